package generator

import (
	"fmt"
	"path/filepath"

	"github.com/erraggy/hsrgen/internal/fileutil"
)

// WriteFiles writes all generated files to the specified output directory.
// The directory is created if it doesn't exist and files whose content is
// unchanged are not rewritten. It returns the names of the files written.
func (r *GenerateResult) WriteFiles(outputDir string) ([]string, error) {
	return r.writeFiles(outputDir, fileutil.WriteOptions{})
}

// CheckFiles reports whether outputDir already holds exactly the generated
// files. The returned error wraps fileutil.ErrOutOfDate for the first file
// that is missing or differs.
func (r *GenerateResult) CheckFiles(outputDir string) error {
	_, err := r.writeFiles(outputDir, fileutil.WriteOptions{Check: true})
	return err
}

func (r *GenerateResult) writeFiles(outputDir string, opt fileutil.WriteOptions) ([]string, error) {
	var written []string
	for _, file := range r.Files {
		safeName := filepath.Base(file.Name)
		if safeName != file.Name {
			return written, fmt.Errorf("invalid file name %q: must not contain path separators", file.Name)
		}
		wrote, err := fileutil.WriteFile(filepath.Join(outputDir, safeName), file.Content, opt)
		if err != nil {
			return written, fmt.Errorf("failed to write file %s: %w", file.Name, err)
		}
		if wrote {
			written = append(written, file.Name)
		}
	}
	return written, nil
}

// WriteFile writes a single generated file to the specified path.
func (f *GeneratedFile) WriteFile(path string) error {
	if _, err := fileutil.WriteFile(path, f.Content, fileutil.WriteOptions{}); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}
