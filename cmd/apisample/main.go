package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/affistack/brandledger/internal/config"
	"github.com/affistack/brandledger/internal/partnerboost"
	"github.com/affistack/brandledger/pkg/log"
	"go.uber.org/zap"
)

// apisample prints one raw page from a PartnerBoost endpoint. It exists to
// inspect payload shapes without touching the database.
func main() {
	os.Exit(run())
}

func run() int {
	kind := flag.String("kind", "products", "endpoint to sample: products or brands")
	page := flag.Int("page", 1, "page to fetch")
	limit := flag.Int("limit", 10, "records per page")
	flag.Parse()

	cfg := config.Load()
	logger, err := log.NewLogger(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, "init logger:", err)
		return 1
	}
	defer logger.Sync()

	client, err := partnerboost.New(partnerboost.Params{Config: cfg, Log: logger})
	if err != nil {
		logger.Error("client init failed", zap.Error(err))
		return 1
	}

	ctx := context.Background()
	var payload []byte
	switch *kind {
	case "products":
		p, err := client.FetchProductsPage(ctx, *page, *limit)
		if err != nil {
			logger.Error("fetch products failed", zap.Error(err))
			return 1
		}
		payload, err = json.MarshalIndent(p.Records, "", "  ")
		if err != nil {
			logger.Error("encode products failed", zap.Error(err))
			return 1
		}
	case "brands":
		raw, err := client.FetchBrandsPage(ctx, *page, *limit)
		if err != nil {
			logger.Error("fetch brands failed", zap.Error(err))
			return 1
		}
		var buf bytes.Buffer
		if err := json.Indent(&buf, raw, "", "  "); err != nil {
			logger.Error("encode brands failed", zap.Error(err))
			return 1
		}
		payload = buf.Bytes()
	default:
		fmt.Fprintf(os.Stderr, "unknown kind %q, expected products or brands\n", *kind)
		return 1
	}

	fmt.Println(string(payload))
	return 0
}
