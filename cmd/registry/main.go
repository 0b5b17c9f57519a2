package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"creator-engagement-system/chain"
	"creator-engagement-system/conf"

	"github.com/schollz/progressbar/v3"
)

var (
	ENV     string
	kind    string
	resolve bool
)

func init() {
	flag.StringVar(&ENV, "env", "mainnet", "Environment: loc/mainnet/testnet")
	flag.StringVar(&kind, "kind", "creators", "Registry to read: creators/contents")
	flag.BoolVar(&resolve, "resolve", false, "Resolve object details via multiGetObjects")
}

// registry fetches an on-chain registry, decodes the identifier vector and
// prints it; with -resolve it also fetches each object's details.
func main() {
	flag.Parse()

	if ENV == "loc" {
		conf.SystemEnvironmentEnum = conf.LocalEnvironmentEnum
	} else if ENV == "testnet" {
		conf.SystemEnvironmentEnum = conf.TestnetEnvironmentEnum
	}

	if err := conf.InitConfig(); err != nil {
		log.Fatalf("Failed to initialize config: %v", err)
	}

	client := chain.NewClient(
		conf.Cfg.Chain.RpcUrl,
		conf.Cfg.Chain.PackageId,
		conf.Cfg.Chain.Module,
		conf.Cfg.Chain.Sender,
	)

	var function, registryID string
	switch kind {
	case "creators":
		function = "get_all_creators"
		registryID = conf.Cfg.Registry.CreatorRegistry
	case "contents":
		function = "get_all_contents"
		registryID = conf.Cfg.Registry.ContentRegistry
	default:
		fmt.Fprintf(os.Stderr, "unknown kind %q, want creators or contents\n", kind)
		os.Exit(1)
	}

	ids, err := client.ReadAddressVector(function, registryID)
	if err != nil {
		log.Fatalf("Failed to read %s registry: %v", kind, err)
	}

	fmt.Printf("%s registry: %d entries\n", kind, len(ids))
	for _, id := range ids {
		fmt.Println(id)
	}

	if !resolve || len(ids) == 0 {
		return
	}

	batch := conf.Cfg.Registry.ResolveBatch
	bar := progressbar.Default(int64(len(ids)), "resolving objects")

	for start := 0; start < len(ids); start += batch {
		end := start + batch
		if end > len(ids) {
			end = len(ids)
		}

		objects, err := client.GetObjects(ids[start:end])
		if err != nil {
			log.Fatalf("Failed to resolve objects [%d:%d]: %v", start, end, err)
		}

		for _, obj := range objects {
			fmt.Printf("%s  type=%s  owner=%s\n", obj.ObjectID, obj.Type, obj.Owner)
		}
		bar.Add(end - start)
	}
}
