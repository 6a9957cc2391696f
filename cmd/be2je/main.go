// Command be2je converts Bedrock item files to the Java Edition JSON format.
//
//	be2je [-nbt] [-indent] file...
//
// Files hold a single item, as JSON unless -nbt is passed, in which case they hold little endian NBT.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"git.patyhank.net/falloutBot/saveplayers/conv"
	log "github.com/sirupsen/logrus"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("be2je", flag.ContinueOnError)
	fs.SetOutput(stderr)
	useNBT := fs.Bool("nbt", false, "read little endian NBT instead of JSON")
	indent := fs.Bool("indent", false, "indent the output")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return 2
	}

	logger := log.New()
	logger.SetOutput(stderr)
	logger.SetFormatter(&log.TextFormatter{DisableTimestamp: true})

	enc := json.NewEncoder(stdout)
	if *indent {
		enc.SetIndent("", "  ")
	}
	status := 0
	for _, path := range fs.Args() {
		it, err := convertFile(path, *useNBT)
		if err == nil {
			err = enc.Encode(it)
		}
		if err != nil {
			logger.WithField("file", path).Error(err)
			status = 1
		}
	}
	return status
}

func convertFile(path string, useNBT bool) (conv.Item, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return conv.Item{}, err
	}
	decode := conv.DecodeJSON
	if useNBT {
		decode = conv.DecodeNBT
	}
	raw, err := decode(b)
	if err != nil {
		return conv.Item{}, fmt.Errorf("decode: %w", err)
	}
	return conv.Convert(raw)
}
