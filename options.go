package pagecraft

import (
	"github.com/tsawler/pagecraft/classify"
	"github.com/tsawler/pagecraft/layout"
)

// convertOptions holds configuration for a conversion.
type convertOptions struct {
	columns              int
	strategy             layout.Strategy
	baseMediaURL         string
	headingCharThreshold int
	title                string
	altText              TextRecognizer
}

// defaultOptions returns the default conversion options.
func defaultOptions() convertOptions {
	return convertOptions{
		columns:              1,
		strategy:             layout.StrategyAuto,
		headingCharThreshold: classify.DefaultHeadingCharThreshold,
	}
}

// clone creates a copy of convertOptions.
func (o convertOptions) clone() convertOptions {
	return convertOptions{
		columns:              o.columns,
		strategy:             o.strategy,
		baseMediaURL:         o.baseMediaURL,
		headingCharThreshold: o.headingCharThreshold,
		title:                o.title,
		altText:              o.altText,
	}
}
