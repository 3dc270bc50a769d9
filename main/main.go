// Command main profiles the tuple codec: it runs encode, split, lookup
// and count loops and writes a heap profile. With -http the pprof
// endpoints stay up after the run.
package main

import (
	"flag"
	"fmt"
	"log"
	"net/http"
	_ "net/http/pprof"
	"os"
	"runtime"
	"runtime/pprof"

	"github.com/rawbytedev/enclosed"
)

func main() {
	var (
		loops   = flag.Int("n", 10000, "number of encode/decode loops")
		memPath = flag.String("memprofile", "mem.prof", "heap profile output `file`")
		addr    = flag.String("http", "", "serve pprof on `addr` after the run, e.g. localhost:6060")
	)
	flag.Parse()

	runtime.MemProfileRate = 1
	if err := profile(*loops); err != nil {
		log.Fatal(err)
	}
	if err := writeHeap(*memPath); err != nil {
		log.Fatal(err)
	}
	log.Printf("%d loops, heap profile in %s", *loops, *memPath)

	if *addr != "" {
		log.Fatal(http.ListenAndServe(*addr, nil))
	}
}

func profile(loops int) error {
	t := enclosed.Tuple{
		enclosed.Of("azerty"), enclosed.Of("hel#lo"), enclosed.Null(),
		enclosed.Of(`wor\ld`), enclosed.Of(""), enclosed.Of("random"),
	}
	target := enclosed.Of("random")
	for range loops {
		s, err := enclosed.Encode(t)
		if err != nil {
			return err
		}
		if got := enclosed.Split(s); len(got) != len(t) {
			return fmt.Errorf("split %q: %d elements, want %d", s, len(got), len(t))
		}
		if i := enclosed.IndexOf(s, target); i != 5 {
			return fmt.Errorf("lookup in %q: index %d, want 5", s, i)
		}
		_ = enclosed.Count(s)
	}
	return nil
}

func writeHeap(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := pprof.WriteHeapProfile(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
