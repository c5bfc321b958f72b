package cli

import (
	"reflect"

	"github.com/alecthomas/kong"
)

// bucketSizeMapper creates a Kong mapper for BucketSize.
func bucketSizeMapper() kong.MapperFunc {
	return func(ctx *kong.DecodeContext, target reflect.Value) error {
		var s string
		if err := ctx.Scan.PopValueInto("size", &s); err != nil {
			return err
		}
		size, err := ParseBucketSize(s)
		if err != nil {
			return err
		}
		target.Set(reflect.ValueOf(size))
		return nil
	}
}
