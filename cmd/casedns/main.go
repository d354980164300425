package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/gustycube/casedns/internal/config"
	"github.com/gustycube/casedns/internal/health"
	"github.com/gustycube/casedns/internal/ident"
	"github.com/gustycube/casedns/internal/logging"
	"github.com/gustycube/casedns/internal/mapper"
	"github.com/gustycube/casedns/internal/metrics"
	"github.com/gustycube/casedns/internal/ontology"
	"github.com/gustycube/casedns/internal/rdf"
	"github.com/gustycube/casedns/internal/serialize"
	"github.com/gustycube/casedns/internal/telemetry"
	"github.com/gustycube/casedns/internal/validate"
	"github.com/gustycube/casedns/internal/vocab"
)

func main() {
	var configFile string
	var kbPrefix string
	var kbPrefixIRI string
	var debug bool
	var outputFormat string
	var dnsCSV string
	var doValidate bool
	var seed int64
	var metricsAddr string
	var otelEndpoint string
	var otelInsecure bool
	var otelService string
	var showVersion bool

	flag.StringVar(&configFile, "config", "", "path to config file (YAML or JSON)")
	flag.StringVar(&kbPrefix, "kb-prefix", "", "prefix label to use for knowledge-base individuals")
	flag.StringVar(&kbPrefixIRI, "kb-prefix-iri", "", "prefix IRI to use for knowledge-base individuals")
	flag.BoolVar(&debug, "debug", false, "verbose logging")
	flag.StringVar(&outputFormat, "output-format", "", "override extension-based format guess (json-ld, turtle, ntriples)")
	flag.StringVar(&dnsCSV, "dns-csv", "", "input CSV file containing DNS records")
	flag.BoolVar(&doValidate, "validate", false, "validate the output against the CASE/UCO ontology")
	flag.Int64Var(&seed, "seed", 0, "seed for deterministic node identifiers (0 = random)")
	flag.StringVar(&metricsAddr, "metrics_addr", "", "metrics listen addr (empty to disable)")
	flag.StringVar(&otelEndpoint, "otel_endpoint", "", "OTLP HTTP endpoint (host:port)")
	flag.BoolVar(&otelInsecure, "otel_insecure", true, "OTLP insecure (no TLS)")
	flag.StringVar(&otelService, "otel_service", "", "OTEL service.name")
	flag.BoolVar(&showVersion, "version", false, "show version and exit")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "casedns - process passive-DNS CSV records into a CASE/UCO graph\n\n")
		fmt.Fprintf(os.Stderr, "Usage: %s [options] <out_graph>\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s output.json\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -dns-csv=records.csv -validate output.json\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -output-format=turtle graph.ttl\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		fmt.Fprintf(os.Stderr, "  REDIS_ADDR             Redis server for the ontology document cache\n")
		fmt.Fprintf(os.Stderr, "  CASEDNS_ONTOLOGY_URLS  Comma-separated ontology URLs for -validate\n")
	}

	flag.Parse()

	if showVersion {
		fmt.Println("casedns v1.0.0")
		fmt.Println("Built with Go", strings.TrimPrefix(runtime.Version(), "go"))
		os.Exit(0)
	}

	log := logging.New(debug)
	defer log.Sync()

	var cfg *config.Config
	var err error

	if configFile != "" {
		cfg, err = config.LoadFromFile(configFile)
		if err != nil {
			log.Fatal("failed to load config file", "file", configFile, "err", err)
		}
		log.Info("loaded config from file", "file", configFile)
	} else {
		cfg = &config.Config{}
		cfg.SetDefaults()
	}

	cfg.LoadFromEnv()

	flags := make(map[string]interface{})
	if kbPrefix != "" {
		flags["kb_prefix"] = kbPrefix
	}
	if kbPrefixIRI != "" {
		flags["kb_prefix_iri"] = kbPrefixIRI
	}
	if outputFormat != "" {
		flags["output_format"] = outputFormat
	}
	if dnsCSV != "" {
		flags["dns_csv"] = dnsCSV
	}
	if flag.NArg() > 0 {
		flags["out_graph"] = flag.Arg(0)
	}
	if seed != 0 {
		flags["seed"] = seed
	}
	if metricsAddr != "" {
		flags["metrics_addr"] = metricsAddr
	}
	if otelEndpoint != "" {
		flags["otel_endpoint"] = otelEndpoint
	}
	if otelService != "" {
		flags["otel_service"] = otelService
	}
	flags["validate"] = doValidate
	flags["debug"] = debug
	flags["otel_insecure"] = otelInsecure

	cfg.MergeWithFlags(flags)

	if cfg.OutGraph == "" {
		flag.Usage()
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal("invalid configuration", "err", err)
	}

	ctx := context.Background()

	shutdown, err := telemetry.Init(ctx, cfg.OTELEndpoint, cfg.OTELService, cfg.OTELInsecure)
	if err != nil {
		log.Warn("otel init failed", "err", err)
	} else {
		defer shutdown(context.Background())
	}

	healthHandler := health.NewHandler(log)
	healthHandler.SetMetadata("version", "1.0.0")
	if cfg.MetricsAddr != "" {
		go metrics.ServeWithHealth(cfg.MetricsAddr, healthHandler, log)
		log.Info("metrics and health server started", "addr", cfg.MetricsAddr)
	}

	format := serialize.GuessFormat(cfg.OutGraph)
	if cfg.OutputFormat != "" {
		format, err = serialize.ParseFormat(cfg.OutputFormat)
		if err != nil {
			log.Fatal("bad output format", "err", err)
		}
	}

	var gen *ident.Generator
	if cfg.Seed != 0 {
		gen = ident.NewDeterministic(cfg.Seed)
	} else {
		gen = ident.New()
	}

	kb := rdf.IRI(cfg.KBPrefixIRI)
	g := rdf.NewGraph()
	g.Bind(cfg.KBPrefix, kb)
	g.Bind("uco-core", vocab.CoreNS)
	g.Bind("uco-observable", vocab.ObservableNS)
	g.Bind("vocabulary", vocab.VocabularyNS)
	g.Bind("xsd", vocab.XSDNS)

	healthHandler.SetReady(true)

	m := mapper.New(kb, gen)
	rows, err := m.ConvertFile(ctx, cfg.DNSCSV, g)
	if err != nil {
		log.Fatal("convert dns records", "csv", cfg.DNSCSV, "err", err)
	}
	log.Info("converted dns records", "csv", cfg.DNSCSV, "rows", rows, "statements", g.Len())

	if err := serialize.WriteFile(g, cfg.OutGraph, format); err != nil {
		log.Fatal("write graph", "err", err)
	}
	log.Info("wrote graph", "path", cfg.OutGraph, "format", format)

	if cfg.DoValidate {
		log.Info("validating output against CASE ontology", "urls", cfg.OntologyURLs)
		loader, err := ontology.NewLoader(log, cfg.RedisAddr, time.Duration(cfg.CacheTTLHours)*time.Hour)
		if err != nil {
			log.Error("ontology loader init", "err", err)
			os.Exit(1)
		}
		if cfg.RedisAddr != "" {
			healthHandler.RegisterChecker("ontology-cache", health.NewCacheChecker(cfg.RedisAddr, loader.PingCache))
		}
		checker := validate.NewShapeChecker(loader, cfg.OntologyURLs, format)
		report, err := checker.Check(ctx, cfg.OutGraph)
		if err != nil {
			log.Error("validation unavailable", "err", err)
			os.Exit(1)
		}
		if !report.Conforms {
			log.Error("validation failed")
			fmt.Fprintln(os.Stderr, report.Text)
			os.Exit(1)
		}
		log.Info("validation successful")
	}
}
