// Package exporter writes finished recaps to disk as Markdown and Word files.
package exporter

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/nguyentantai21042004/recap-flow/internal/translator"
)

// Recap is the finished output of one job.
type Recap struct {
	Title      string
	Language   translator.Language
	Transcript string
	Summary    string
	CreatedAt  time.Time
}

type headingSet struct {
	summary    string
	transcript string
}

func (r Recap) headings() headingSet {
	if r.Language == translator.French {
		return headingSet{summary: "Résumé", transcript: "Transcription"}
	}
	return headingSet{summary: "Summary", transcript: "Transcript"}
}

// Markdown renders r as a Markdown document.
func (r Recap) Markdown() string {
	h := r.headings()
	return fmt.Sprintf("# %s\n\n_%s_\n\n## %s\n\n%s\n\n## %s\n\n%s\n",
		r.Title,
		r.CreatedAt.Format("2006-01-02 15:04"),
		h.summary,
		strings.TrimSpace(r.Summary),
		h.transcript,
		strings.TrimSpace(r.Transcript),
	)
}

// Write stores r as <name>.md and <name>.docx in dir and returns both paths.
func Write(dir, name string, r Recap) (mdPath, docxPath string, err error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", "", fmt.Errorf("create output dir: %w", err)
	}

	mdPath = filepath.Join(dir, name+".md")
	if err := os.WriteFile(mdPath, []byte(r.Markdown()), 0644); err != nil {
		return "", "", fmt.Errorf("write markdown: %w", err)
	}

	docxPath = filepath.Join(dir, name+".docx")
	if err := writeDocx(r, docxPath); err != nil {
		return mdPath, "", fmt.Errorf("write docx: %w", err)
	}

	return mdPath, docxPath, nil
}
