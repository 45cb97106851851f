// Copyright 2021 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a source-available license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

// Command httpwire-dump reads one HTTP/1.x message from stdin (or a file)
// and prints its parsed structure, exercising the library end to end.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/wireframehq/httpwire"
)

func main() {
	kindFlag := flag.String("kind", "request", "message kind: request or response")
	path := flag.String("f", "-", "input file, - for stdin")
	chunkSize := flag.Int("chunk", 4096, "bytes fed to the parser per Feed call")
	flag.Parse()

	var kind httpwire.Kind
	switch *kindFlag {
	case "request":
		kind = httpwire.KindRequest
	case "response":
		kind = httpwire.KindResponse
	default:
		kind = httpwire.KindEither
	}

	in := os.Stdin
	if *path != "-" {
		f, err := os.Open(*path)
		if err != nil {
			fmt.Fprintln(os.Stderr, "httpwire-dump:", err)
			os.Exit(1)
		}
		defer f.Close()
		in = f
	}

	data, err := io.ReadAll(in)
	if err != nil {
		fmt.Fprintln(os.Stderr, "httpwire-dump:", err)
		os.Exit(1)
	}

	d := httpwire.NewDriver(kind)
	for off := 0; off < len(data); {
		end := off + *chunkSize
		if end > len(data) {
			end = len(data)
		}
		consumed := d.Feed(data[off:end])
		if err := d.P.Err(); err != httpwire.OK {
			fmt.Fprintln(os.Stderr, "httpwire-dump: parse error:", err)
			os.Exit(1)
		}
		off += consumed
		if d.Done {
			break
		}
	}
	if !d.Done {
		if err := d.FeedEOF(); err != httpwire.OK {
			fmt.Fprintln(os.Stderr, "httpwire-dump: parse error at EOF:", err)
			os.Exit(1)
		}
	}

	doc := d.Doc
	if doc.Kind == httpwire.KindRequest {
		fmt.Printf("%s %s HTTP/%d.%d\n", doc.Method, doc.TargetOrReason, doc.Major, doc.Minor)
	} else {
		fmt.Printf("HTTP/%d.%d %d %s\n", doc.Major, doc.Minor, doc.StatusCode, doc.TargetOrReason)
	}
	for _, h := range doc.Headers {
		fmt.Printf("%s: %s\n", h.Name, h.Value)
	}
	fmt.Printf("-- body: %d bytes, keep-alive=%v, upgrade=%v\n",
		len(doc.Body), d.P.ShouldKeepAlive(), doc.Upgrade)
}
