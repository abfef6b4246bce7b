package util

import (
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"runtime"
	"strings"
	"time"
	"unicode"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/shirou/gopsutil/v3/mem"
)

// Stats logs the elapsed time and memory usage when the returned function is called.
func Stats() func() {
	start := time.Now()
	return func() {
		log.Debug().Msgf("time to run %v", time.Since(start))
		var ms runtime.MemStats
		runtime.ReadMemStats(&ms)
		log.Debug().Msgf("Alloc: %d MB, TotalAlloc: %d MB, Sys: %d MB",
			ms.Alloc/1024/1024, ms.TotalAlloc/1024/1024, ms.Sys/1024/1024)
		log.Debug().Msgf("Mallocs: %d, Frees: %d, GC: %d", ms.Mallocs, ms.Frees, ms.NumGC)
	}
}

func ApplyCliSettings(verbose bool, profile bool, pprofPort uint16) {
	if verbose {
		log.Warn().Msgf("verbosity up")
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	if profile {
		log.Info().Msgf("profiling is enabled for this session. Server will listen on port %d", pprofPort)
		go func() {
			if err := http.ListenAndServe(fmt.Sprintf("localhost:%d", pprofPort), nil); err != nil {
				log.Error().Err(err).Msgf("error starting profiling server on port %d", pprofPort)
				return
			}
		}()
	}
}

// bytesPerResult is a rough upper bound of the memory held per evaluated password.
const bytesPerResult = 512

// CheckRam fails when the system does not have enough free memory to hold the results of
// items evaluations. When the memory cannot be read it only warns.
func CheckRam(items uint64) error {
	required := items * bytesPerResult
	memStat, err := mem.VirtualMemory()
	if err != nil {
		log.Warn().Msgf("estimated memory use for %d passwords %d MiB. Could not read the available memory", items, required/(1024*1024))
		return nil
	}

	log.Debug().Msgf("system has %.2f MiB of RAM available", float64(memStat.Available)/(1024*1024))
	if required > memStat.Available {
		return fmt.Errorf("%d passwords need about %d MiB of RAM, only %d MiB available",
			items, required/(1024*1024), memStat.Available/(1024*1024))
	}
	return nil
}

// ToScreamingSnakeCase converts Go field names to environment variable names, GuessRate to
// GUESS_RATE. Already upper cased names are returned unchanged.
func ToScreamingSnakeCase(s string) string {
	var b strings.Builder
	runes := []rune(s)
	for i, r := range runes {
		if i > 0 && unicode.IsUpper(r) {
			prev := runes[i-1]
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower) {
				b.WriteRune('_')
			}
		}
		if r == ' ' || r == '-' || r == '.' {
			b.WriteRune('_')
			continue
		}
		b.WriteRune(unicode.ToUpper(r))
	}
	return b.String()
}
