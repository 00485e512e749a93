package orient

import (
	"archive/zip"
	"fmt"
	"io"

	"github.com/hashicorp/go-multierror"

	"github.com/orienthq/go-orient/pkg/request"
)

// ImportedCollection is one Postman collection converted to the domain model:
// a Directory plus its Locations in document order. It is detached from any
// Workspace until merged.
type ImportedCollection struct {
	Directory *Directory
	Locations []*Location
}

// ImportArchive reads a ZIP archive of Postman collection exports, one JSON
// document per file. The whole archive is converted before anything is
// returned: one malformed document fails the entire import, and when several
// documents are malformed all causes are reported together.
func ImportArchive(r io.ReaderAt, size int64) ([]ImportedCollection, error) {
	archive, err := zip.NewReader(r, size)
	if err != nil {
		return nil, ImportError{Err: err}
	}

	var out []ImportedCollection
	var errs *multierror.Error
	for _, file := range archive.File {
		if file.FileInfo().IsDir() {
			continue
		}
		doc, err := readArchiveFile(file)
		if err != nil {
			errs = multierror.Append(errs, fmt.Errorf(`file "%s": %w`, file.Name, err))
			continue
		}
		col, err := importDocument(doc)
		if err != nil {
			errs = multierror.Append(errs, fmt.Errorf(`file "%s": %w`, file.Name, err))
			continue
		}
		out = append(out, *col)
	}
	if err := errs.ErrorOrNil(); err != nil {
		return nil, ImportError{Err: err}
	}
	return out, nil
}

// ImportDocument converts a single Postman collection export.
func ImportDocument(data []byte) (*ImportedCollection, error) {
	col, err := importDocument(data)
	if err != nil {
		return nil, ImportError{Err: err}
	}
	return col, nil
}

func readArchiveFile(file *zip.File) ([]byte, error) {
	reader, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer reader.Close()
	return io.ReadAll(reader)
}

func importDocument(data []byte) (*ImportedCollection, error) {
	doc := postmanDocument{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("malformed collection document: %w", err)
	}

	col := &ImportedCollection{
		Directory: &Directory{
			ID:   doc.Info.PostmanID,
			Name: doc.Info.Name,
			Leaf: true,
		},
	}
	for _, item := range doc.Item {
		loc := &Location{
			ID:          item.ID,
			Name:        item.Name,
			URL:         item.Request.URL.Raw,
			Method:      ParseMethod(item.Request.Method),
			Params:      request.Values{},
			Body:        item.Request.Body.Raw,
			FormParams:  pairsToValues(item.Request.Body.URLEncoded),
			Header:      pairsToValues(item.Request.Header),
			ContentType: ContentTypeJSON,
		}
		col.Locations = append(col.Locations, loc)
		col.Directory.Locations = append(col.Directory.Locations, loc.ID)
	}
	return col, nil
}

func pairsToValues(pairs []postmanKV) request.Values {
	out := make(request.Values, 0, len(pairs))
	for _, p := range pairs {
		out = append(out, request.Pair{Key: p.Key, Value: p.Value})
	}
	return out
}
