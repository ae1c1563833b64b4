package report

import (
	"fmt"
	"io"
	"os"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/ipc"
	"github.com/apache/arrow-go/v18/arrow/memory"
)

// WriteDiffs exports the difference matrix as an Arrow IPC file: one row per
// compared sample, the absolute differences as a fixed-size float32 list, and
// the run parameters as schema metadata.
func WriteDiffs(path string, samples []string, diffs [][]float32, runInfo map[string]string) error {
	if len(diffs) == 0 {
		return fmt.Errorf("no difference rows to export")
	}
	if len(samples) != len(diffs) {
		return fmt.Errorf("sample count %d does not match row count %d", len(samples), len(diffs))
	}
	classes := len(diffs[0])

	md := arrow.MetadataFrom(runInfo)
	schema := arrow.NewSchema([]arrow.Field{
		{Name: "sample", Type: arrow.BinaryTypes.String},
		{Name: "abs_diff", Type: arrow.FixedSizeListOf(int32(classes), arrow.PrimitiveTypes.Float32)},
	}, &md)

	pool := memory.NewGoAllocator()
	builder := array.NewRecordBuilder(pool, schema)
	defer builder.Release()

	sampleBuilder := builder.Field(0).(*array.StringBuilder)
	diffBuilder := builder.Field(1).(*array.FixedSizeListBuilder)
	valueBuilder := diffBuilder.ValueBuilder().(*array.Float32Builder)

	for i, row := range diffs {
		if len(row) != classes {
			return fmt.Errorf("ragged difference matrix: row %d has %d values (want %d)", i, len(row), classes)
		}
		sampleBuilder.Append(samples[i])
		diffBuilder.Append(true)
		valueBuilder.AppendValues(row, nil)
	}

	rec := builder.NewRecord()
	defer rec.Release()

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create report file: %w", err)
	}

	w, err := ipc.NewFileWriter(f, ipc.WithSchema(schema), ipc.WithAllocator(pool))
	if err != nil {
		f.Close()
		return fmt.Errorf("open arrow writer: %w", err)
	}
	if err := w.Write(rec); err != nil {
		w.Close()
		f.Close()
		return fmt.Errorf("write record: %w", err)
	}
	if err := w.Close(); err != nil {
		f.Close()
		return fmt.Errorf("close arrow writer: %w", err)
	}
	return f.Close()
}

// ReadDiffs loads an exported difference matrix back into memory, returning
// the sample paths, the rows, and the run parameters stored in the schema.
func ReadDiffs(path string) ([]string, [][]float32, map[string]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("open report file: %w", err)
	}
	defer f.Close()

	r, err := ipc.NewFileReader(f, ipc.WithAllocator(memory.NewGoAllocator()))
	if err != nil {
		return nil, nil, nil, fmt.Errorf("open arrow reader: %w", err)
	}
	defer r.Close()

	md := r.Schema().Metadata()
	runInfo := make(map[string]string, md.Len())
	for i, k := range md.Keys() {
		runInfo[k] = md.Values()[i]
	}

	var samples []string
	var diffs [][]float32

	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, nil, fmt.Errorf("read record: %w", err)
		}

		sampleCol, ok := rec.Column(0).(*array.String)
		if !ok {
			return nil, nil, nil, fmt.Errorf("column 0 is %s, want string", rec.Column(0).DataType())
		}
		diffCol, ok := rec.Column(1).(*array.FixedSizeList)
		if !ok {
			return nil, nil, nil, fmt.Errorf("column 1 is %s, want fixed_size_list", rec.Column(1).DataType())
		}
		values := diffCol.ListValues().(*array.Float32)
		classes := int(diffCol.DataType().(*arrow.FixedSizeListType).Len())

		for row := 0; row < int(rec.NumRows()); row++ {
			samples = append(samples, sampleCol.Value(row))
			vals := make([]float32, classes)
			for j := 0; j < classes; j++ {
				vals[j] = values.Value(row*classes + j)
			}
			diffs = append(diffs, vals)
		}
	}

	return samples, diffs, runInfo, nil
}
