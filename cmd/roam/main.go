package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/antchfx/htmlquery"
	"go.uber.org/zap"

	"github.com/roamlib/roam"
	"github.com/roamlib/roam/config"
	"github.com/roamlib/roam/internal/logging"
)

func main() {
	selector := flag.String("select", "", "CSS selector to run against the page")
	xpath := flag.String("xpath", "", "XPath expression to run against the page")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: roam [-select css] [-xpath expr] <url>")
		os.Exit(2)
	}
	target := flag.Arg(0)

	cfg := config.LoadOrDefault()
	logger, err := logging.New(logging.Config{Level: cfg.LogLevel, Development: cfg.LogDev})
	if err != nil {
		logger = logging.NewDefault()
	}
	defer logger.Sync()

	settings := cfg.Settings()
	settings.Logger = logger
	browser := roam.New(settings)

	ctx := context.Background()
	if err := browser.Open(ctx, target); err != nil {
		logger.Fatal("open failed", zap.String("url", target), zap.Error(err))
	}

	resp, err := browser.Response()
	if err != nil {
		logger.Fatal("no response", zap.Error(err))
	}
	fmt.Println(resp.StatusLine)
	fmt.Println(resp.URL)

	doc, err := browser.Parsed()
	if err != nil {
		logger.Fatal("parse failed", zap.Error(err))
	}
	if title := doc.Title(); title != "" {
		fmt.Println(title)
	}

	if *selector != "" {
		nodes, err := browser.Select(*selector)
		if err != nil {
			logger.Fatal("select failed", zap.String("selector", *selector), zap.Error(err))
		}
		for _, node := range nodes {
			fmt.Println(node.Text())
		}
	}

	if *xpath != "" {
		nodes, err := browser.XPath(*xpath)
		if err != nil {
			logger.Fatal("xpath failed", zap.String("expr", *xpath), zap.Error(err))
		}
		for _, node := range nodes {
			fmt.Println(htmlquery.InnerText(node))
		}
	}
}
