package normalize

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"finhealth/pkg/models"
)

// readPortable extracts document text with pdfcpu and hands it to the
// configured line-item extraction strategy.
func (n *Normalizer) readPortable(fileBytes []byte) ([]RawRow, error) {
	text, err := extractPDFText(fileBytes)
	if err != nil {
		return nil, models.WrapFault(models.FaultMalformedInput, err, "could not extract text from document")
	}

	rows := n.extractor.Extract(text)
	if len(rows) == 0 {
		return nil, models.NewFault(models.FaultMalformedInput, "no recognizable line items in document text")
	}

	return rows, nil
}

// extractPDFText pulls text content out of a PDF. pdfcpu works on files, so
// the payload goes through a temp directory that is removed afterwards.
func extractPDFText(fileBytes []byte) (string, error) {
	tempDir, err := os.MkdirTemp("", "finhealth-pdf")
	if err != nil {
		return "", fmt.Errorf("create temp dir: %w", err)
	}
	defer os.RemoveAll(tempDir)

	tempFile := filepath.Join(tempDir, "upload.pdf")
	if err := os.WriteFile(tempFile, fileBytes, 0o644); err != nil {
		return "", fmt.Errorf("write temp pdf: %w", err)
	}

	pdfCtx, err := api.ReadContextFile(tempFile)
	if err != nil {
		return "", fmt.Errorf("read pdf: %w", err)
	}

	outDir := filepath.Join(tempDir, "content")
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return "", fmt.Errorf("create content dir: %w", err)
	}

	conf := model.NewDefaultConfiguration()
	if err := api.ExtractContentFile(tempFile, outDir, nil, conf); err != nil {
		return "", fmt.Errorf("extract pdf content: %w", err)
	}

	var builder strings.Builder
	for page := 1; page <= pdfCtx.PageCount; page++ {
		for _, name := range []string{
			fmt.Sprintf("page_%d.txt", page),
			fmt.Sprintf("upload_Content_page_%d.txt", page),
		} {
			content, err := os.ReadFile(filepath.Join(outDir, name))
			if err != nil {
				continue
			}
			builder.WriteString(decodeContentText(string(content)))
			builder.WriteString("\n")
			break
		}
	}

	return builder.String(), nil
}

var textShowOp = regexp.MustCompile(`\(((?:[^()\\]|\\.)*)\)\s*T[jJ]`)

// decodeContentText recovers readable text from a PDF content stream by
// collecting the string operands of text-showing operators. Streams without
// text operators pass through unchanged.
func decodeContentText(content string) string {
	matches := textShowOp.FindAllStringSubmatch(content, -1)
	if len(matches) == 0 {
		return content
	}

	var b strings.Builder
	for _, m := range matches {
		s := strings.NewReplacer(`\(`, "(", `\)`, ")", `\\`, `\`).Replace(m[1])
		b.WriteString(s)
		b.WriteString("\n")
	}
	return b.String()
}
