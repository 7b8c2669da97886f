package load

import (
	"io"
	"os"

	"github.com/goccy/go-yaml"

	"github.com/agentstation/recount/pkg/errors"
	"github.com/agentstation/recount/pkg/tally"
)

// slateFile is the on-disk shape of a candidate slate.
type slateFile struct {
	Constituency string            `yaml:"constituency,omitempty"`
	Candidates   []tally.Candidate `yaml:"candidates"`
}

// Slate reads an ordered candidate slate from a YAML file.
func Slate(path string) (tally.Slate, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.WrapIO("open", path, err)
	}
	defer f.Close()

	return ReadSlate(f, path)
}

// ReadSlate reads a candidate slate in YAML form. The source name is used
// in error messages only.
func ReadSlate(r io.Reader, source string) (tally.Slate, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.WrapIO("read", source, err)
	}

	var file slateFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, errors.WrapParse("yaml", source, err)
	}

	slate := tally.Slate(file.Candidates)
	if err := slate.Validate(); err != nil {
		return nil, err
	}
	return slate, nil
}
