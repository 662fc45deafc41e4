package cli

import (
	"strings"

	"github.com/spf13/pflag"

	"sqlast/internal/sqlparse"
)

// vendorValue is a pflag.Value that validates the dialect name on Set.
type vendorValue struct {
	v sqlparse.Vendor
}

var _ pflag.Value = (*vendorValue)(nil)

func (v *vendorValue) String() string { return v.v.String() }
func (v *vendorValue) Type() string   { return "vendor" }

func (v *vendorValue) Set(s string) error {
	vendor, err := sqlparse.ParseVendor(s)
	if err != nil {
		return err
	}
	v.v = vendor
	return nil
}

// featureValue accumulates repeated --feature flags. Each value may itself
// be a comma list.
type featureValue struct {
	f sqlparse.Features
}

var _ pflag.Value = (*featureValue)(nil)

func (f *featureValue) String() string { return f.f.String() }
func (f *featureValue) Type() string   { return "feature" }

func (f *featureValue) Set(s string) error {
	features, err := sqlparse.ParseFeatures(s)
	if err != nil {
		return err
	}
	f.f |= features
	return nil
}

func featureList() string {
	return strings.Join(sqlparse.FeatureNames(), ", ")
}
