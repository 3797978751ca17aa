package yahoo

import (
	"encoding/json"
	"fmt"

	"market-pulse/src/helpers"
)

type YahooChartResponse struct {
	Chart struct {
		Result []YahooChartResult `json:"result"`
		Error  *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

type YahooChartResult struct {
	Meta struct {
		Currency             string   `json:"currency"`
		Symbol               string   `json:"symbol"`
		ExchangeName         string   `json:"exchangeName"`
		InstrumentType       string   `json:"instrumentType"`
		RegularMarketTime    int64    `json:"regularMarketTime"`
		ExchangeTimezoneName string   `json:"exchangeTimezoneName"`
		RegularMarketPrice   *float64 `json:"regularMarketPrice"`
		ChartPreviousClose   *float64 `json:"chartPreviousClose"`
		DataGranularity      string   `json:"dataGranularity"`
		Range                string   `json:"range"`
	} `json:"meta"`
	Timestamp  []int64 `json:"timestamp"`
	Indicators struct {
		Quote []struct {
			High   []*float64 `json:"high"`   // Use pointers to handle null
			Low    []*float64 `json:"low"`    // Use pointers to handle null
			Open   []*float64 `json:"open"`   // Use pointers to handle null
			Close  []*float64 `json:"close"`  // Use pointers to handle null
			Volume []*float64 `json:"volume"` // Use pointers to handle null
		} `json:"quote"`
	} `json:"indicators"`
}

// -----------------------------------------------------------------------------

// decodeChart parses a chart payload and returns its first result.
func decodeChart(providerID string, data []byte) (*YahooChartResult, error) {
	var resp YahooChartResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, helpers.NewProviderSchemaError(fmt.Sprintf("malformed chart payload for %s", providerID), err)
	}

	if resp.Chart.Error != nil {
		return nil, helpers.NewProviderSchemaError(
			fmt.Sprintf("yahoo api error for %s: %s - %s", providerID, resp.Chart.Error.Code, resp.Chart.Error.Description), nil)
	}

	if len(resp.Chart.Result) == 0 {
		return nil, helpers.NewProviderSchemaError(fmt.Sprintf("no result in response for %s", providerID), nil)
	}

	return &resp.Chart.Result[0], nil
}

// -----------------------------------------------------------------------------

// valueAt treats missing arrays, short arrays and null entries as zero.
func valueAt(values []*float64, i int) float64 {
	if i >= len(values) || values[i] == nil {
		return 0
	}
	return *values[i]
}
