package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/born-ml/scan/backend/cpu"
	"github.com/born-ml/scan/tensor"
	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/x448/float16"
	"k8s.io/klog/v2"
)

type runOptions struct {
	op        string
	dtype     string
	keyType   string
	dims      []int
	keys      []string
	axis      int
	exclusive bool
	async     bool
	noSIMD    bool
}

func newRunCmd() *cobra.Command {
	opts := &runOptions{}
	cmd := &cobra.Command{
		Use:   "run [flags] values...",
		Short: "Scan the given values and print the result",
		Long: `Scan the given values along one axis and print the result.

Values are given column-major (axis 0 fastest), either as separate
arguments or comma separated. Without --dims they form a single line.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := opts.run(splitFields(args))
			if err != nil {
				return err
			}
			cmd.Println(result)
			return nil
		},
	}
	flags := cmd.Flags()
	flags.StringVar(&opts.op, "op", "sum", "scan operator: sum, product, min, max or count_nonzero")
	flags.StringVar(&opts.dtype, "dtype", "int32", "element type of the values")
	flags.IntSliceVar(&opts.dims, "dims", nil, "extents, axis 0 first (default: number of values)")
	flags.IntVar(&opts.axis, "axis", 0, "axis to scan along")
	flags.BoolVar(&opts.exclusive, "exclusive", false, "exclusive scan: each output excludes its own element")
	flags.StringSliceVar(&opts.keys, "keys", nil, "segment keys, one per value; restarts the scan where they change")
	flags.StringVar(&opts.keyType, "key-dtype", "int32", "element type of the keys")
	flags.BoolVar(&opts.async, "async", false, "run the scan on the background queue")
	flags.BoolVar(&opts.noSIMD, "no-simd", false, "disable the SIMD lane path")
	return cmd
}

func splitFields(args []string) []string {
	fields := lo.FlatMap(args, func(arg string, _ int) []string {
		return strings.Split(arg, ",")
	})
	return lo.Compact(lo.Map(fields, func(f string, _ int) string {
		return strings.TrimSpace(f)
	}))
}

func (opts *runOptions) run(values []string) (string, error) {
	op, ok := tensor.ParseOp(opts.op)
	if !ok {
		return "", errors.Errorf("unknown operator %q", opts.op)
	}
	dtype, ok := tensor.ParseDataType(opts.dtype)
	if !ok {
		return "", errors.Errorf("unknown dtype %q", opts.dtype)
	}
	shape := tensor.Shape(opts.dims)
	if len(shape) == 0 {
		shape = tensor.Shape{len(values)}
	}
	if shape.NumElements() != len(values) {
		return "", errors.Errorf("dims %v hold %d elements, got %d values", opts.dims, shape.NumElements(), len(values))
	}

	x, err := parseRaw(dtype, shape, values)
	if err != nil {
		return "", errors.WithMessage(err, "parsing values")
	}

	cfg := cpu.ConfigFromEnv()
	cfg.Async = cfg.Async || opts.async
	backend := cpu.New(cpu.WithParallel(cfg), cpu.WithSIMD(!opts.noSIMD))
	defer backend.Close()

	var out *tensor.RawTensor
	if len(opts.keys) > 0 {
		keyType, ok := tensor.ParseDataType(opts.keyType)
		if !ok {
			return "", errors.Errorf("unknown key dtype %q", opts.keyType)
		}
		key, err := parseRaw(keyType, shape, splitFields(opts.keys))
		if err != nil {
			return "", errors.WithMessage(err, "parsing keys")
		}
		out, err = backend.ScanByKey(key, x, opts.axis, op, !opts.exclusive)
		if err != nil {
			return "", err
		}
	} else {
		out, err = backend.Scan(x, opts.axis, op, !opts.exclusive)
		if err != nil {
			return "", err
		}
	}
	if err := out.Eval(); err != nil {
		return "", err
	}
	klog.V(1).Infof("%s scan of %v produced %s (%s)", op, shape, out.DType(), humanize.Bytes(uint64(out.ByteSize())))
	return formatRaw(out), nil
}

// parseRaw builds a raw tensor of the given dtype from textual values.
func parseRaw(dtype tensor.DataType, shape tensor.Shape, fields []string) (*tensor.RawTensor, error) {
	switch dtype {
	case tensor.Float32:
		return rawFrom(shape, fields, func(s string) (float32, error) {
			v, err := strconv.ParseFloat(s, 32)
			return float32(v), err
		})
	case tensor.Float64:
		return rawFrom(shape, fields, func(s string) (float64, error) {
			return strconv.ParseFloat(s, 64)
		})
	case tensor.Float16:
		return rawFrom(shape, fields, func(s string) (float16.Float16, error) {
			v, err := strconv.ParseFloat(s, 32)
			return float16.Fromfloat32(float32(v)), err
		})
	case tensor.Complex64:
		return rawFrom(shape, fields, func(s string) (complex64, error) {
			v, err := strconv.ParseComplex(s, 64)
			return complex64(v), err
		})
	case tensor.Complex128:
		return rawFrom(shape, fields, func(s string) (complex128, error) {
			return strconv.ParseComplex(s, 128)
		})
	case tensor.Int8:
		return rawFrom(shape, fields, parseInt[int8](8))
	case tensor.Int16:
		return rawFrom(shape, fields, parseInt[int16](16))
	case tensor.Int32:
		return rawFrom(shape, fields, parseInt[int32](32))
	case tensor.Int64:
		return rawFrom(shape, fields, parseInt[int64](64))
	case tensor.Uint8:
		return rawFrom(shape, fields, parseUint[uint8](8))
	case tensor.Uint16:
		return rawFrom(shape, fields, parseUint[uint16](16))
	case tensor.Uint32:
		return rawFrom(shape, fields, parseUint[uint32](32))
	case tensor.Uint64:
		return rawFrom(shape, fields, parseUint[uint64](64))
	case tensor.Bool:
		return rawFrom(shape, fields, strconv.ParseBool)
	}
	return nil, errors.Errorf("cannot parse values of dtype %s", dtype)
}

func parseInt[T int8 | int16 | int32 | int64](bits int) func(string) (T, error) {
	return func(s string) (T, error) {
		v, err := strconv.ParseInt(s, 10, bits)
		return T(v), err
	}
}

func parseUint[T uint8 | uint16 | uint32 | uint64](bits int) func(string) (T, error) {
	return func(s string) (T, error) {
		v, err := strconv.ParseUint(s, 10, bits)
		return T(v), err
	}
}

func rawFrom[T tensor.DType](shape tensor.Shape, fields []string, parse func(string) (T, error)) (*tensor.RawTensor, error) {
	data := make([]T, len(fields))
	for i, f := range fields {
		v, err := parse(f)
		if err != nil {
			return nil, errors.Wrapf(err, "value #%d", i)
		}
		data[i] = v
	}
	return tensor.RawFromSlice(shape, data)
}

// formatRaw prints a realized tensor as "[v0 v1 ...] dtype shape".
func formatRaw(r *tensor.RawTensor) string {
	var values []string
	switch r.DType() {
	case tensor.Float32:
		values = formatValues(tensor.As[float32](r))
	case tensor.Float64:
		values = formatValues(tensor.As[float64](r))
	case tensor.Float16:
		values = lo.Map(tensor.As[float16.Float16](r), func(v float16.Float16, _ int) string {
			return strconv.FormatFloat(float64(v.Float32()), 'g', -1, 32)
		})
	case tensor.Complex64:
		values = formatValues(tensor.As[complex64](r))
	case tensor.Complex128:
		values = formatValues(tensor.As[complex128](r))
	case tensor.Int32:
		values = formatValues(tensor.As[int32](r))
	case tensor.Int64:
		values = formatValues(tensor.As[int64](r))
	case tensor.Uint32:
		values = formatValues(tensor.As[uint32](r))
	case tensor.Uint64:
		values = formatValues(tensor.As[uint64](r))
	default:
		// Scans never produce the narrow types.
		values = []string{"<" + r.DType().String() + ">"}
	}
	return "[" + strings.Join(values, " ") + "] " + r.DType().String() + " " + r.Shape().String()
}

func formatValues[T tensor.DType](data []T) []string {
	return lo.Map(data, func(v T, _ int) string {
		return fmt.Sprint(v)
	})
}
