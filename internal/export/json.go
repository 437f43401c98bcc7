package export

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/gatherctl/gather/internal/model"
)

// JSONWriter writes the per-kind JSON artifacts into the output directory.
//
// Design decision: We use standard encoding/json because the dumps mirror
// fixed shapes; there is no schema evolution or performance concern that
// would justify a third-party codec.
type JSONWriter struct {
	outputDir string
}

// NewJSONWriter creates a JSONWriter targeting outputDir.
func NewJSONWriter(outputDir string) *JSONWriter {
	return &JSONWriter{outputDir: outputDir}
}

// Name returns the writer name.
func (w *JSONWriter) Name() string {
	return "json"
}

// collectionInfo is the metadata block embedded in the JSON dumps.
type collectionInfo struct {
	Tool           string   `json:"tool"`
	CollectionTime string   `json:"collection_time"`
	TotalRecords   int      `json:"total_records"`
	Symbols        []string `json:"cryptocurrencies,omitempty"`
}

// Write renders the JSON artifact for the run's kind.
func (w *JSONWriter) Write(run *model.Run) error {
	switch run.Kind {
	case model.RunNews:
		return w.writeNews(run)
	case model.RunWeather:
		return w.writeWeather(run)
	case model.RunCrypto:
		return w.writeCrypto(run)
	default:
		return fmt.Errorf("unknown run kind %q", run.Kind)
	}
}

func (w *JSONWriter) writeNews(run *model.Run) error {
	payload := struct {
		Info     collectionInfo  `json:"collection_info"`
		Articles []model.Article `json:"articles"`
	}{
		Info: collectionInfo{
			Tool:           "gather",
			CollectionTime: run.CollectedAt,
			TotalRecords:   len(run.Articles),
		},
		Articles: run.Articles,
	}

	return w.dump("news_articles.json", payload)
}

// writeWeather dumps the raw upstream responses keyed by city, matching
// the shape downstream notebooks already parse.
func (w *JSONWriter) writeWeather(run *model.Run) error {
	return w.dump("weather_raw.json", run.RawPayloads)
}

func (w *JSONWriter) writeCrypto(run *model.Run) error {
	seen := make(map[string]bool)
	var symbols []string
	for _, s := range run.Samples {
		if !seen[s.Symbol] {
			seen[s.Symbol] = true
			symbols = append(symbols, s.Symbol)
		}
	}

	rawResponse := json.RawMessage("{}")
	if raw, ok := run.RawPayloads["prices"]; ok {
		rawResponse = raw
	}

	payload := struct {
		Info      collectionInfo      `json:"collection_info"`
		PriceData []model.PriceSample `json:"price_data"`
		RawAPI    json.RawMessage     `json:"raw_api_response"`
	}{
		Info: collectionInfo{
			Tool:           "gather",
			CollectionTime: run.CollectedAt,
			TotalRecords:   len(run.Samples),
			Symbols:        symbols,
		},
		PriceData: run.Samples,
		RawAPI:    rawResponse,
	}

	return w.dump("crypto_prices_raw.json", payload)
}

// dump writes v as indented UTF-8 JSON.
func (w *JSONWriter) dump(name string, v any) error {
	return writeFile(w.outputDir, name, func(f *os.File) error {
		enc := json.NewEncoder(f)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		return enc.Encode(v)
	})
}
