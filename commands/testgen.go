package commands

import (
	"encoding/json"
	"io/ioutil"
	"os"
	"path/filepath"

	weave "github.com/iov-one/weave-escrow"
	"github.com/iov-one/weave-escrow/errors"
)

// Example will be written out to a file, .json and .bin
// Filename should have no path and no extension
type Example struct {
	Filename string
	Obj      weave.Marshaller
}

// TestGenCmd writes the protobuf and json encodings of the given examples
// into a directory, so that clients can test their codecs against them.
// The first argument names the output directory (default "testdata").
func TestGenCmd(examples []Example, args []string) error {
	outdir := "testdata"
	if len(args) > 0 {
		outdir = args[0]
	}
	if err := os.MkdirAll(outdir, 0755); err != nil {
		return errors.Wrapf(errors.ErrInput, "cannot create %s: %s", outdir, err)
	}

	for _, ex := range examples {
		js, err := json.MarshalIndent(ex.Obj, "", "  ")
		if err != nil {
			return errors.Wrapf(errors.ErrInput, "json %s: %s", ex.Filename, err)
		}
		if err := writeFile(outdir, ex.Filename+".json", js); err != nil {
			return err
		}

		pb, err := ex.Obj.Marshal()
		if err != nil {
			return errors.Wrapf(err, "protobuf %s", ex.Filename)
		}
		if err := writeFile(outdir, ex.Filename+".bin", pb); err != nil {
			return err
		}
	}
	return nil
}

func writeFile(dir, name string, data []byte) error {
	if err := ioutil.WriteFile(filepath.Join(dir, name), data, 0644); err != nil {
		return errors.Wrapf(errors.ErrInput, "cannot write %s: %s", name, err)
	}
	return nil
}
