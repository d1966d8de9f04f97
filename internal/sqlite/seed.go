package sqlite

import (
	"context"
	"fmt"
)

// Attribute names seeded into every new session file.
const (
	AttrSourceAudioFilePath = "source_audio_file_path"
	AttrGlobalNotes         = "global_notes"
)

// seedAttributeNames lists the attribute rows created with the schema.
var seedAttributeNames = []string{
	AttrSourceAudioFilePath,
	AttrGlobalNotes,
}

// seedAttributes inserts the empty seed attribute rows. It runs only as part
// of schema creation.
func seedAttributes(ctx context.Context, ex execer) error {
	for _, name := range seedAttributeNames {
		if _, err := ex.ExecContext(ctx,
			"INSERT INTO attributes (name, value) VALUES (?, '')", name,
		); err != nil {
			return fmt.Errorf("seeding attribute %s: %w", name, err)
		}
	}
	return nil
}
