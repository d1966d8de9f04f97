package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/jling-NM/CACTI-sub000/internal/legacy"
	"github.com/jling-NM/CACTI-sub000/internal/session"
	"github.com/jling-NM/CACTI-sub000/internal/sqlite"
	"github.com/jling-NM/CACTI-sub000/pkg/timecode"
)

// scriptPlayer is a Player positioned by the timestamps of a coding script.
type scriptPlayer struct {
	pos      time.Duration
	byteRate int64 // bytes per second of audio
}

func (p *scriptPlayer) Position() time.Duration { return p.pos }
func (p *scriptPlayer) ByteLength() int64       { return 0 }

func (p *scriptPlayer) BytePosition() int64 {
	return p.pos.Milliseconds() * p.byteRate / 1000
}

func newReplayCmd(a *app) *cobra.Command {
	var (
		audio      string
		out        string
		transcript string
		byteRate   int64
	)
	cmd := &cobra.Command{
		Use:   "replay <script|->",
		Short: "Build a coded session from a script of coding actions",
		Long: `Replay a coding script as if a rater pressed the keys while listening.
Each line is an optional H:MM:SS playback position followed by an action:

  start          open an utterance (ending an open one)
  end            close the open utterance
  code NAME      code the last utterance, closing it if open
  note TEXT      set the annotation of the last utterance
  undo           revert the last step

Blank lines and lines starting with # are ignored. The result is written to a
session store (--out), a legacy transcript (--transcript), or both.`,
		Example: `  cacti replay coding.txt --audio client01.wav --out client01.cacti`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if out == "" && transcript == "" {
				return fmt.Errorf("%w: one of --out or --transcript is required", errUsage)
			}

			r, closeFn, err := openScript(cmd, args[0])
			if err != nil {
				return err
			}
			defer closeFn()

			player := &scriptPlayer{byteRate: byteRate}
			sess := session.New(audio, a.cats, session.WithPlayer(player), session.WithLogger(a.logger))
			if err := runScript(r, sess, player); err != nil {
				return err
			}

			if transcript != "" {
				if err := legacy.SaveTranscript(transcript, audio, sess.Utterances); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", transcript)
			}
			if out != "" {
				ctx := cmd.Context()
				store, err := sqlite.Open(ctx, out, sqlite.WithLogger(a.logger))
				if err != nil {
					return err
				}
				defer store.Close()
				if err := sqlite.SaveSession(ctx, store, sess.Utterances, sess.Ratings, audio, sess.Notes); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", out)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&audio, "audio", "", "audio file the session codes")
	cmd.Flags().StringVarP(&out, "out", "o", "", "session store to write")
	cmd.Flags().StringVar(&transcript, "transcript", "", "legacy transcript to write")
	cmd.Flags().Int64Var(&byteRate, "byte-rate", 32000, "audio bytes per second, for stream offsets")
	return cmd
}

func openScript(cmd *cobra.Command, arg string) (io.Reader, func(), error) {
	if arg == "-" {
		return cmd.InOrStdin(), func() {}, nil
	}
	f, err := os.Open(arg)
	if err != nil {
		return nil, nil, fmt.Errorf("open script: %w", err)
	}
	return f, func() { f.Close() }, nil
}

// runScript applies each script line to sess, moving player first when the
// line starts with a position.
func runScript(r io.Reader, sess *session.Session, player *scriptPlayer) error {
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		fields := strings.Fields(text)
		if at, err := timecode.Parse(fields[0]); err == nil {
			player.pos = at
			fields = fields[1:]
		}
		if len(fields) == 0 {
			continue
		}
		if err := applyAction(sess, fields); err != nil {
			return fmt.Errorf("script line %d: %w", line, err)
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("read script: %w", err)
	}
	return nil
}

func applyAction(sess *session.Session, fields []string) error {
	verb, rest := strings.ToLower(fields[0]), fields[1:]
	switch verb {
	case "start":
		_, err := sess.StartUtterance()
		return err
	case "end":
		return sess.EndUtterance()
	case "code":
		if len(rest) != 1 {
			return fmt.Errorf("%w: code takes one code name", errUsage)
		}
		return sess.CodeUtteranceByName(rest[0])
	case "note":
		return sess.Annotate(strings.Join(rest, " "))
	case "undo":
		sess.Undo()
		return nil
	default:
		return fmt.Errorf("%w: unknown action %q", errUsage, verb)
	}
}
