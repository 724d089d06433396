package scheduletest

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"

	"github.com/pciu/dutyfinder/internal/domain/extract"
	"github.com/pciu/dutyfinder/pkg/logger"
)

// Generation shape constants.
const (
	codeLength        = 3
	blocksPerSession  = 4
	maxRoomsPerBlock  = 2
	maxCodesPerRoom   = 2
	roomNumberBase    = 301
	roomNumberSpread  = 98
	courseNumberBase  = 100
	courseNumberRange = 400
	capacityBase      = 20
	capacityRange     = 20
	idNumberDivisor   = 10000000
	idSuffixBase      = 100
	idSuffixRange     = 900
	poolRetryLimit    = 1000
)

const codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"

var departments = []string{"CSE", "BBA", "EEE", "ENG", "LLB"}

var courseTitles = []string{
	"Introduction to Computing",
	"Data Structures",
	"Business Communication",
	"Circuit Analysis",
	"Constitutional Law",
	"Microprocessors",
	"Marketing Principles",
	"Software Engineering",
}

// generated is a synthetic schedule plus the ground truth it encodes.
type generated struct {
	Text        string
	Pool        []string
	Expected    map[string]int // duty count per invigilator code
	TotalDuties int
}

// randIntn returns a random int in [0, n) using crypto/rand.
func randIntn(n int) int {
	v, _ := rand.Int(rand.Reader, big.NewInt(int64(n)))
	return int(v.Int64())
}

// generateCodePool builds size distinct invigilator codes, avoiding the
// program-code exclusion table so every generated code survives extraction.
func generateCodePool(size int) ([]string, error) {
	excluded := make(map[string]struct{}, len(extract.DefaultExcludedCodes()))
	for _, code := range extract.DefaultExcludedCodes() {
		excluded[code] = struct{}{}
	}

	pool := make([]string, 0, size)
	seen := make(map[string]struct{}, size)
	for attempt := 0; len(pool) < size; attempt++ {
		if attempt > poolRetryLimit {
			return nil, fmt.Errorf("could not build a pool of %d codes", size)
		}
		var b strings.Builder
		for i := 0; i < codeLength; i++ {
			b.WriteByte(codeAlphabet[randIntn(len(codeAlphabet))])
		}
		code := b.String()
		if _, ok := excluded[code]; ok {
			continue
		}
		if _, ok := seen[code]; ok {
			continue
		}
		seen[code] = struct{}{}
		pool = append(pool, code)
	}
	return pool, nil
}

// generateSchedule builds a schedule document with the configured number of
// course blocks and records the duty count each code should resolve to.
func generateSchedule(ctx context.Context, config *Config, stats *Stats) (*generated, error) {
	logger.Get().Info(ctx, "generating schedule",
		logger.Int("blocks", config.NumBlocks),
		logger.Int("poolSize", config.PoolSize))

	pool, err := generateCodePool(config.PoolSize)
	if err != nil {
		return nil, err
	}

	var sb strings.Builder
	sb.WriteString("Port City International University\n")
	sb.WriteString("Exam Invigilation Duty Roster\n\n")

	gen := &generated{Pool: pool, Expected: make(map[string]int, len(pool))}

	for block := 0; block < config.NumBlocks; block++ {
		if block%blocksPerSession == 0 {
			session := block / blocksPerSession
			day := session%28 + 1
			slot := "(09:00am - 12:00pm)"
			if session%2 == 1 {
				slot = "(02:00pm - 05:00pm)"
			}
			fmt.Fprintf(&sb, "Date: %02d/02/2024 Time: %s\n", day, slot)
			sb.WriteString("Course Code Course Title Program Room ID No Invigilator\n")
		}

		dept := departments[randIntn(len(departments))]
		number := courseNumberBase + randIntn(courseNumberRange)
		title := courseTitles[randIntn(len(courseTitles))]
		program := fmt.Sprintf("%s-%d(%d)", dept, randIntn(90)+10, capacityBase+randIntn(capacityRange))

		fmt.Fprintf(&sb, "%s %d %s %s", dept, number, title, program)

		rooms := 1 + randIntn(maxRoomsPerBlock)
		for r := 0; r < rooms; r++ {
			room := roomNumberBase + randIntn(roomNumberSpread)
			capacity := capacityBase + randIntn(capacityRange)
			idNo := randIntn(idNumberDivisor)
			idSuffix := idSuffixBase + randIntn(idSuffixRange)

			codes := pickCodes(pool, 1+randIntn(maxCodesPerRoom))
			for _, code := range codes {
				gen.Expected[code]++
			}
			gen.TotalDuties++

			fmt.Fprintf(&sb, " %d (%d)%07d-%d %s", room, capacity, idNo, idSuffix, strings.Join(codes, "+"))
		}
		sb.WriteString("\n")

		if block%blocksPerSession == blocksPerSession-1 {
			fmt.Fprintf(&sb, "Page | %d\n---\n", block/blocksPerSession+1)
		}
	}

	sb.WriteString("Updated on 01/02/2024\n")
	gen.Text = sb.String()

	stats.BlocksGenerated = config.NumBlocks
	stats.DutiesExpected = gen.TotalDuties
	logger.Get().Info(ctx, "generated schedule",
		logger.Int("blocks", config.NumBlocks),
		logger.Int("expectedDuties", gen.TotalDuties))

	return gen, nil
}

// pickCodes draws n distinct codes from the pool.
func pickCodes(pool []string, n int) []string {
	if n > len(pool) {
		n = len(pool)
	}
	picked := make([]string, 0, n)
	used := make(map[int]struct{}, n)
	for len(picked) < n {
		i := randIntn(len(pool))
		if _, ok := used[i]; ok {
			continue
		}
		used[i] = struct{}{}
		picked = append(picked, pool[i])
	}
	return picked
}
