// Copyright 2026 The Tensorwire Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command tensorwire inspects and decodes JSON-encoded tensor record
// files.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/tensorwire/tensorwire"
	"github.com/tensorwire/tensorwire/float16"
)

func main() {
	cmd := &cli.Command{
		Name:  "tensorwire",
		Usage: "inspect and decode tensor record files",
		Commands: []*cli.Command{
			{
				Name:      "inspect",
				Usage:     "print the metadata of a tensor record",
				ArgsUsage: "<record.json>",
				Action:    inspectAction,
			},
			{
				Name:      "decode",
				Usage:     "decode a tensor record and print its elements",
				ArgsUsage: "<record.json>",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "base-dir",
						Usage: "directory to resolve external data locations against",
						Value: ".",
					},
					&cli.IntFlag{
						Name:  "limit",
						Usage: "maximum number of elements to print (0 prints all)",
						Value: 16,
					},
				},
				Action: decodeAction,
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "tensorwire: %v\n", err)
		os.Exit(1)
	}
}

func readRecord(path string) (*tensorwire.TensorRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var rec tensorwire.TensorRecord
	if err = json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &rec, nil
}

func inspectAction(_ context.Context, cmd *cli.Command) error {
	if cmd.Args().Len() != 1 {
		return fmt.Errorf("expected exactly one record file argument")
	}
	rec, err := readRecord(cmd.Args().First())
	if err != nil {
		return err
	}

	fmt.Printf("name:      %q\n", rec.Name)
	fmt.Printf("data type: %s\n", rec.DataType)
	fmt.Printf("dims:      %v\n", rec.Dims)
	switch {
	case rec.Segment != nil:
		fmt.Printf("storage:   segment [%d, %d)\n", rec.Segment.Begin, rec.Segment.End)
	case rec.UsesExternalData():
		fmt.Println("storage:   external")
		for _, e := range rec.ExternalData {
			fmt.Printf("  %s: %s\n", e.Key, e.Value)
		}
	case rec.HasRawData():
		fmt.Printf("storage:   raw (%d bytes)\n", len(rec.RawData))
	default:
		fmt.Println("storage:   typed data fields")
	}
	return nil
}

func decodeAction(_ context.Context, cmd *cli.Command) error {
	if cmd.Args().Len() != 1 {
		return fmt.Errorf("expected exactly one record file argument")
	}
	rec, err := readRecord(cmd.Args().First())
	if err != nil {
		return err
	}

	codec := tensorwire.NewCodec(tensorwire.WithBaseDir(cmd.String("base-dir")))
	arr, err := codec.ToArray(rec)
	if err != nil {
		return err
	}

	fmt.Printf("%s %v %q\n", arr.DType(), arr.Shape(), arr.Name())
	printElements(arr.Data(), int(cmd.Int("limit")))
	return nil
}

func printElements(data any, limit int) {
	n, at := elementCount(data)
	for i := 0; i < n; i++ {
		if limit > 0 && i == limit {
			fmt.Printf("... (%d more)\n", n-i)
			return
		}
		fmt.Println(at(i))
	}
}

func elementCount(data any) (int, func(int) any) {
	switch v := data.(type) {
	case []bool:
		return len(v), func(i int) any { return v[i] }
	case []uint8:
		return len(v), func(i int) any { return v[i] }
	case []int8:
		return len(v), func(i int) any { return v[i] }
	case []uint16:
		return len(v), func(i int) any { return v[i] }
	case []int16:
		return len(v), func(i int) any { return v[i] }
	case []uint32:
		return len(v), func(i int) any { return v[i] }
	case []int32:
		return len(v), func(i int) any { return v[i] }
	case []uint64:
		return len(v), func(i int) any { return v[i] }
	case []int64:
		return len(v), func(i int) any { return v[i] }
	case []float32:
		return len(v), func(i int) any { return v[i] }
	case []float64:
		return len(v), func(i int) any { return v[i] }
	case []complex64:
		return len(v), func(i int) any { return v[i] }
	case []complex128:
		return len(v), func(i int) any { return v[i] }
	case []float16.F16:
		return len(v), func(i int) any { return v[i].Float32() }
	case []string:
		return len(v), func(i int) any { return v[i] }
	default:
		return 0, nil
	}
}
