// Package export renders a transcript and its summary into a Word document.
package export

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/gomutex/godocx"
	"github.com/gomutex/godocx/docx"
)

const (
	fontName = "Times New Roman"
	fontSize = 13

	sentencesPerParagraph = 5
)

var (
	reHeading  = regexp.MustCompile(`^(#{1,6})\s+(.+)$`)
	reBold     = regexp.MustCompile(`\*\*(.+?)\*\*`)
	reBullet   = regexp.MustCompile(`^[\-\*]\s+(.+)$`)
	reNumbered = regexp.MustCompile(`^\d+\.\s+(.+)$`)
	reSentence = regexp.MustCompile(`[^.!?]+[.!?]*`)
)

// Document is the content of one export.
type Document struct {
	Title      string
	Source     string
	Transcript string
	Summary    string
}

// WriteDocx writes d to outputPath as a .docx file.
func WriteDocx(d Document, outputPath string) error {
	doc, err := godocx.NewDocument()
	if err != nil {
		return fmt.Errorf("create document: %w", err)
	}

	addStyledRun(doc.AddParagraph(""), d.Title, true, 16)
	if d.Source != "" {
		addStyledRun(doc.AddParagraph(""), d.Source, false, fontSize)
	}

	if strings.TrimSpace(d.Summary) != "" {
		addStyledRun(doc.AddParagraph(""), "Summary", true, 15)
		writeMarkdown(doc, d.Summary)
	}

	addStyledRun(doc.AddParagraph(""), "Transcript", true, 15)
	for _, para := range transcriptParagraphs(d.Transcript) {
		p := doc.AddParagraph("")
		p.AddText(para).Font(fontName).Size(fontSize).Color("000000")
	}

	if err := doc.SaveTo(outputPath); err != nil {
		return fmt.Errorf("save document: %w", err)
	}
	return nil
}

// writeMarkdown converts markdown text to styled paragraphs.
func writeMarkdown(doc *docx.RootDoc, markdown string) {
	for _, line := range strings.Split(markdown, "\n") {
		trimmed := strings.TrimSpace(line)

		if trimmed == "" || trimmed == "---" {
			continue
		}

		if m := reHeading.FindStringSubmatch(trimmed); m != nil {
			addStyledRun(doc.AddParagraph(""), m[2], true, headingSize(len(m[1])))
			continue
		}

		if m := reBullet.FindStringSubmatch(trimmed); m != nil {
			addRichText(doc.AddParagraph(""), "• "+m[1])
			continue
		}

		if reNumbered.MatchString(trimmed) {
			addRichText(doc.AddParagraph(""), trimmed)
			continue
		}

		addRichText(doc.AddParagraph(""), trimmed)
	}
}

// transcriptParagraphs splits recognized text into readable paragraphs.
// Whisper output has no paragraph breaks, so sentences are grouped; repeated
// consecutive sentences (a common recognition artifact) are dropped.
func transcriptParagraphs(transcript string) []string {
	var paras []string
	for _, block := range strings.Split(transcript, "\n") {
		var (
			group []string
			prev  string
		)
		for _, s := range reSentence.FindAllString(block, -1) {
			s = strings.TrimSpace(s)
			if s == "" || s == prev {
				continue
			}
			prev = s
			group = append(group, s)
			if len(group) == sentencesPerParagraph {
				paras = append(paras, strings.Join(group, " "))
				group = nil
			}
		}
		if len(group) > 0 {
			paras = append(paras, strings.Join(group, " "))
		}
	}
	return paras
}

func headingSize(level int) uint64 {
	switch level {
	case 1:
		return 16
	case 2:
		return 15
	case 3:
		return 14
	default:
		return fontSize
	}
}

func addStyledRun(p *docx.Paragraph, text string, bold bool, size uint64) {
	text = cleanMarkdownInline(text)
	run := p.AddText(text).Font(fontName).Size(size).Color("000000")
	if bold {
		run.Bold(true)
	}
}

func addRichText(p *docx.Paragraph, text string) {
	parts := reBold.Split(text, -1)
	matches := reBold.FindAllStringSubmatch(text, -1)

	for i, part := range parts {
		if part != "" {
			clean := cleanMarkdownInline(part)
			p.AddText(clean).Font(fontName).Size(fontSize).Color("000000")
		}
		if i < len(matches) {
			clean := cleanMarkdownInline(matches[i][1])
			p.AddText(clean).Font(fontName).Size(fontSize).Color("000000").Bold(true)
		}
	}
}

func cleanMarkdownInline(s string) string {
	s = strings.ReplaceAll(s, "**", "")
	s = strings.ReplaceAll(s, "__", "")
	s = strings.ReplaceAll(s, "`", "")
	return s
}
