package legacy

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/jling-NM/CACTI-sub000/internal/fileutil"
	"github.com/jling-NM/CACTI-sub000/internal/session"
	"github.com/jling-NM/CACTI-sub000/pkg/catalog"
	"github.com/jling-NM/CACTI-sub000/pkg/timecode"
	"github.com/jling-NM/CACTI-sub000/pkg/types"
)

// TranscriptExt is the file extension of legacy transcripts.
const TranscriptExt = ".casaa"

const audioHeader = "Audio File:"

// Token counts of the two record shapes.
const (
	parsedTokens = 5
	codedTokens  = 7
)

// SaveTranscript writes seq to path: the audio header line, then one line
// per Parsed or Coded utterance. Output stops at the first utterance in
// neither state, which can only be a trailing Started one.
func SaveTranscript(path, audioFile string, seq *session.Sequence) error {
	err := fileutil.WriteAtomic(path, func(w io.Writer) error {
		if _, err := fmt.Fprintf(w, "%s\t%s\n", audioHeader, audioFile); err != nil {
			return err
		}
		for _, u := range seq.All() {
			var line string
			switch u.State() {
			case types.StateCoded:
				line = writeCoded(u)
			case types.StateParsed:
				line = writeParsed(u)
			default:
				return nil
			}
			if _, err := io.WriteString(w, line+"\n"); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return &IOError{Op: "save transcript", Path: path, Err: err}
	}
	return nil
}

func writeParsed(u *types.Utterance) string {
	return fmt.Sprintf("%d\t%s\t%s\t%d\t%d",
		u.Order,
		timecode.Format(u.StartTime),
		timecode.Format(u.EndTime),
		u.StartOffset,
		u.EndOffset,
	)
}

func writeCoded(u *types.Utterance) string {
	return fmt.Sprintf("%s\t%d\t%s", writeParsed(u), u.Code.Value, u.Code.Name)
}

// LoadTranscript replaces the contents of seq with the utterances in path
// and returns the audio file named in the header. Codes are resolved by
// value against codes; the name column is informational.
//
// A final line with fewer than five tokens is an incomplete trailing record
// and is dropped. On any error seq is left empty.
func LoadTranscript(path string, codes *catalog.Catalog, seq *session.Sequence) (string, error) {
	seq.Clear()

	data, err := os.ReadFile(path)
	if err != nil {
		return "", &IOError{Op: "load transcript", Path: path, Err: err}
	}
	text, err := decodeText(data)
	if err != nil {
		return "", &IOError{Op: "decode transcript", Path: path, Err: err}
	}

	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	audioFile, err := parseHeader(path, lines)
	if err != nil {
		return "", err
	}

	lastContent := 0
	for i := len(lines) - 1; i > 0; i-- {
		if strings.TrimSpace(lines[i]) != "" {
			lastContent = i
			break
		}
	}

	loaded := session.NewSequence()
	for i := 1; i <= lastContent; i++ {
		line := strings.TrimRight(lines[i], "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		tokens := strings.Split(line, "\t")
		if len(tokens) != parsedTokens && len(tokens) != codedTokens {
			if i == lastContent && len(tokens) < parsedTokens {
				break
			}
			return "", &FormatError{
				Path:   path,
				Line:   i + 1,
				Reason: fmt.Sprintf("expected %d or %d fields, got %d", parsedTokens, codedTokens, len(tokens)),
			}
		}

		u, err := parseRecord(tokens, codes)
		if err != nil {
			return "", &FormatError{Path: path, Line: i + 1, Reason: "bad record", Err: err}
		}
		if err := loaded.Append(u); err != nil {
			return "", &FormatError{Path: path, Line: i + 1, Reason: "out of sequence", Err: err}
		}
	}

	for _, u := range loaded.All() {
		// Append cannot fail: loaded already enforced the same invariants.
		_ = seq.Append(u)
	}
	return audioFile, nil
}

func parseHeader(path string, lines []string) (string, error) {
	if len(lines) == 0 || !strings.HasPrefix(lines[0], audioHeader) {
		return "", &FormatError{Path: path, Line: 1, Reason: "missing audio file header"}
	}
	audioFile := strings.TrimSpace(strings.TrimPrefix(lines[0], audioHeader))
	if audioFile == "" {
		return "", &FormatError{Path: path, Line: 1, Reason: "empty audio file name"}
	}
	return audioFile, nil
}

func parseRecord(tokens []string, codes *catalog.Catalog) (*types.Utterance, error) {
	order, err := strconv.Atoi(strings.TrimSpace(tokens[0]))
	if err != nil {
		return nil, fmt.Errorf("order: %w", err)
	}
	start, err := timecode.Parse(tokens[1])
	if err != nil {
		return nil, fmt.Errorf("start time: %w", err)
	}
	end, err := timecode.Parse(tokens[2])
	if err != nil {
		return nil, fmt.Errorf("end time: %w", err)
	}
	startOffset, err := strconv.ParseInt(strings.TrimSpace(tokens[3]), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("start offset: %w", err)
	}
	endOffset, err := strconv.ParseInt(strings.TrimSpace(tokens[4]), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("end offset: %w", err)
	}

	u := types.NewUtterance(order, start, startOffset)
	if err := u.SetEnd(end, endOffset); err != nil {
		return nil, err
	}
	if len(tokens) == codedTokens {
		value, err := strconv.Atoi(strings.TrimSpace(tokens[5]))
		if err != nil {
			return nil, fmt.Errorf("code value: %w", err)
		}
		code, err := codes.CodeWithValue(value)
		if err != nil {
			return nil, err
		}
		if code.IsValid() {
			if err := u.SetCode(code); err != nil {
				return nil, err
			}
		}
	}
	return u, nil
}

// IsFormatError reports whether err is a transcript format failure.
func IsFormatError(err error) bool {
	return errors.Is(err, ErrFormat)
}
