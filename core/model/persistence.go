package model

import (
	"encoding/gob"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/yaml.v2"

	"github.com/shrit/mlpack"
	"github.com/shrit/mlpack/pkg/errors"
)

// Format is a model archive encoding.
type Format int

const (
	// JSON archives are written by ".json" paths.
	JSON Format = iota
	// Gob archives are written by ".gob" and ".bin" paths.
	Gob
	// YAML archives are written by ".yaml" and ".yml" paths.
	YAML
	// XML archives are written by ".xml" paths.
	XML
)

func (f Format) String() string {
	switch f {
	case JSON:
		return "json"
	case Gob:
		return "gob"
	case YAML:
		return "yaml"
	case XML:
		return "xml"
	default:
		return "unknown"
	}
}

// FormatOf picks the archive format of path from its extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return JSON, nil
	case ".gob", ".bin":
		return Gob, nil
	case ".yaml", ".yml":
		return YAML, nil
	case ".xml":
		return XML, nil
	default:
		return 0, errors.NewFormatError(path,
			"unable to detect model format of '%s'; incorrect extension? (allowed: json, gob, bin, yaml, yml, xml)", path)
	}
}

// Header describes a saved model.
type Header struct {
	// Name is the model type, e.g. "LinearRegression".
	Name string `json:"name" yaml:"name" xml:"name"`
	// Version is the library version that wrote the archive.
	Version string `json:"version" yaml:"version" xml:"version"`
	// ID identifies this particular archive.
	ID string `json:"id" yaml:"id" xml:"id"`
}

// archive is the on-disk envelope around a model.
type archive[T any] struct {
	XMLName xml.Name `json:"-" yaml:"-" xml:"mlpack_model"`
	Header  `yaml:",inline"`
	Model   *T `json:"model" yaml:"model" xml:"model"`
}

// NameOf returns the archive name of model type T.
func NameOf[T any]() string {
	var zero T
	if n, ok := any(&zero).(Named); ok {
		return n.ModelName()
	}
	return reflect.TypeOf(&zero).Elem().Name()
}

// Save writes m to path in the format chosen by the extension of path.
func Save[T any](path string, m *T) (Header, error) {
	format, err := FormatOf(path)
	if err != nil {
		return Header{}, err
	}
	f, err := os.Create(path)
	if err != nil {
		return Header{}, errors.NewFileError(path, err)
	}
	h, err := Encode(f, format, m)
	if err != nil {
		f.Close()
		return Header{}, errors.NewFileError(path, err)
	}
	if err := f.Close(); err != nil {
		return Header{}, errors.NewFileError(path, err)
	}
	return h, nil
}

// Load reads a model of type T from path. Archives holding another model
// type are rejected.
func Load[T any](path string) (*T, Header, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, Header{}, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, Header{}, errors.NewFileError(path, err)
	}
	defer f.Close()

	m, h, err := Decode[T](f, format)
	if err != nil {
		var ve *errors.ValueError
		if errors.As(err, &ve) {
			return nil, h, errors.NewFormatError(path, "%s", ve.Message)
		}
		return nil, h, errors.NewFileError(path, err)
	}
	return m, h, nil
}

// Encode writes m to w as an archive in format. A fresh archive id is
// generated.
func Encode[T any](w io.Writer, format Format, m *T) (Header, error) {
	if m == nil {
		return Header{}, errors.New("cannot save a nil model")
	}
	a := archive[T]{
		Header: Header{
			Name:    NameOf[T](),
			Version: mlpack.Version,
			ID:      uuid.NewString(),
		},
		Model: m,
	}

	var err error
	switch format {
	case JSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		err = enc.Encode(&a)
	case Gob:
		err = gob.NewEncoder(w).Encode(&a)
	case YAML:
		var out []byte
		if out, err = yaml.Marshal(&a); err == nil {
			_, err = w.Write(out)
		}
	case XML:
		enc := xml.NewEncoder(w)
		enc.Indent("", "  ")
		if err = enc.Encode(&a); err == nil {
			_, err = io.WriteString(w, "\n")
		}
	default:
		err = errors.Newf("unknown model format %d", format)
	}
	if err != nil {
		return Header{}, errors.Wrapf(err, "failed to encode model as %s", format)
	}
	return a.Header, nil
}

// Decode reads an archive holding a model of type T from r.
func Decode[T any](r io.Reader, format Format) (*T, Header, error) {
	var a archive[T]
	var err error
	switch format {
	case JSON:
		err = json.NewDecoder(r).Decode(&a)
	case Gob:
		err = gob.NewDecoder(r).Decode(&a)
	case YAML:
		var in []byte
		if in, err = io.ReadAll(r); err == nil {
			err = yaml.Unmarshal(in, &a)
		}
	case XML:
		err = xml.NewDecoder(r).Decode(&a)
	default:
		err = errors.Newf("unknown model format %d", format)
	}
	if err != nil {
		return nil, Header{}, errors.NewValueError("load model",
			fmt.Sprintf("failed to decode %s archive: %v", format, err))
	}

	if want := NameOf[T](); a.Name != want {
		return nil, a.Header, errors.NewValueError("load model",
			fmt.Sprintf("archive holds a '%s' model, but a '%s' model was expected", a.Name, want))
	}
	if a.Model == nil {
		return nil, a.Header, errors.NewValueError("load model", "archive holds no model")
	}
	return a.Model, a.Header, nil
}
