package mapping

import (
	"os"

	"edinet_ingest/pkg/models"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v2"
)

// Overlay adds tag names on top of the built-in tables, e.g. IFRS
// (jpigp_cor) tags for filers that do not report under J-GAAP.
//
//	income_statement:
//	  jpigp_cor:RevenueIFRS: net_sales
//	balance_sheet:
//	  jpigp_cor:AssetsIFRS: total_assets
type Overlay struct {
	IncomeStatement map[string]models.Field `yaml:"income_statement"`
	BalanceSheet    map[string]models.Field `yaml:"balance_sheet"`
}

// LoadOverlay reads an overlay file. Unknown top-level keys are rejected.
func LoadOverlay(path string) (*Overlay, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "mapping: read overlay %s", path)
	}
	o, err := ParseOverlay(data)
	if err != nil {
		return nil, errors.Wrapf(err, "mapping: overlay %s", path)
	}
	return o, nil
}

// ParseOverlay decodes overlay YAML.
func ParseOverlay(data []byte) (*Overlay, error) {
	var o Overlay
	if err := yaml.UnmarshalStrict(data, &o); err != nil {
		return nil, errors.Wrap(err, "decode yaml")
	}
	return &o, nil
}

// Apply extends the given tables with the overlay entries. A field that does
// not belong to the table's statement kind is an error.
func (o *Overlay) Apply(income, balance *Table) (*Table, *Table, error) {
	if o == nil {
		return income, balance, nil
	}
	in, err := income.With(o.IncomeStatement)
	if err != nil {
		return nil, nil, err
	}
	bs, err := balance.With(o.BalanceSheet)
	if err != nil {
		return nil, nil, err
	}
	return in, bs, nil
}
