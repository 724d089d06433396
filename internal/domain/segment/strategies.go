package segment

import (
	"regexp"

	"github.com/pciu/dutyfinder/internal/domain/extract"
	"github.com/pciu/dutyfinder/internal/domain/model"
)

var (
	// roomTokenRe matches a room number with a parenthesized capacity or
	// annotation, like "308 (20)".
	roomTokenRe = regexp.MustCompile(`(\d{3})\s*\([^)]+\)`)

	// programBoundaryRe marks the start of a program-code token that ends an
	// invigilator run, like " BBA-47".
	programBoundaryRe = regexp.MustCompile(`\s[A-Z]{2,4}-\d+`)

	// identRunRe captures a run of identifier-like text: uppercase letters,
	// digits, plus signs, and spaces, starting with a letter.
	identRunRe = regexp.MustCompile(`[A-Z][A-Z0-9+\s]*`)

	// bareRoomRe matches standalone 3-digit room candidates.
	bareRoomRe = regexp.MustCompile(`\b\d{3}\b`)

	// Noise stripped by the multi-room strategy before code extraction.
	programWithCapacityRe = regexp.MustCompile(`[A-Z]{2,4}-\d+\(\d+\)`)
	roomInfoRe            = regexp.MustCompile(`\d{3}\s*\([^)]+\)[0-9\-+rest\s]*`)
	longIDRe              = regexp.MustCompile(`\d{7,}`)
)

func newRecord(block model.CourseBlock, date, time, room string, invigilators []string) model.DutyRecord {
	return model.DutyRecord{
		Date:         date,
		Time:         time,
		Course:       block.Code,
		Title:        block.Title,
		Room:         room,
		Invigilators: invigilators,
	}
}

// pairStrategy handles the strict layout: each room(capacity) token directly
// followed by its own invigilator run. The run extends to the next room
// token, the next program-code token, or the end of the block. Rooms whose
// trailing text yields no codes produce no record here; the fallback
// strategies pick those blocks up.
type pairStrategy struct {
	extractor *extract.Extractor
}

func (p *pairStrategy) Name() string { return "pairs" }

func (p *pairStrategy) Apply(block model.CourseBlock, date, time string) []model.DutyRecord {
	text := block.RawText
	matches := roomTokenRe.FindAllStringSubmatchIndex(text, -1)

	var records []model.DutyRecord
	for i, m := range matches {
		room := text[m[2]:m[3]]

		end := len(text)
		if i+1 < len(matches) {
			end = matches[i+1][0]
		}
		window := text[m[1]:end]

		// Invigilator runs stop at the first program-code token.
		if loc := programBoundaryRe.FindStringIndex(window); loc != nil {
			window = window[:loc[0]]
		}

		run := identRunRe.FindString(window)
		if run == "" {
			continue
		}

		codes := p.extractor.Extract(run)
		if len(codes) == 0 {
			continue
		}
		records = append(records, newRecord(block, date, time, room, codes))
	}
	return records
}

// multiRoomStrategy is the flexible fallback: every bare 3-digit token is a
// room candidate, and one shared invigilator list is recovered from the block
// after stripping program codes, room/capacity tokens, and long ID runs.
//
// Known limitation: when a block legitimately carries per-room lists that the
// pair strategy failed to detect, every room here gets the same shared list.
// The source layout does not carry enough structure to split it.
type multiRoomStrategy struct {
	extractor *extract.Extractor
}

func (m *multiRoomStrategy) Name() string { return "multi-room" }

func (m *multiRoomStrategy) Apply(block model.CourseBlock, date, time string) []model.DutyRecord {
	rooms := bareRoomRe.FindAllString(block.RawText, -1)
	if len(rooms) == 0 {
		return nil
	}

	cleaned := programWithCapacityRe.ReplaceAllString(block.RawText, "")
	cleaned = roomInfoRe.ReplaceAllString(cleaned, " ")
	cleaned = longIDRe.ReplaceAllString(cleaned, "")
	shared := m.extractor.Extract(cleaned)

	records := make([]model.DutyRecord, 0, len(rooms))
	for _, room := range rooms {
		invigilators := make([]string, len(shared))
		copy(invigilators, shared)
		records = append(records, newRecord(block, date, time, room, invigilators))
	}
	return records
}

// singleRoomStrategy is the last resort: take the first room(capacity) token
// and treat the whole remaining suffix as invigilator text. Emits exactly one
// record, possibly with an empty invigilator list.
type singleRoomStrategy struct {
	extractor *extract.Extractor
}

func (s *singleRoomStrategy) Name() string { return "single-room" }

func (s *singleRoomStrategy) Apply(block model.CourseBlock, date, time string) []model.DutyRecord {
	m := roomTokenRe.FindStringSubmatchIndex(block.RawText)
	if m == nil {
		return nil
	}

	room := block.RawText[m[2]:m[3]]
	after := block.RawText[m[1]:]
	codes := s.extractor.Extract(after)
	if codes == nil {
		codes = []string{}
	}

	return []model.DutyRecord{newRecord(block, date, time, room, codes)}
}
