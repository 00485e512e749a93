package orient

import (
	"archive/zip"
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/orienthq/go-orient/pkg/request"
)

const petsCollection = `
{
  "info": {"_postman_id": "col-pets", "name": "Pets API"},
  "item": [
    {
      "id": "item-list",
      "name": "List pets",
      "request": {
        "method": "get",
        "header": [{"key": "Accept", "value": "application/json"}],
        "url": {"raw": "https://example.com/pets"}
      }
    },
    {
      "id": "item-create",
      "name": "Create pet",
      "request": {
        "method": "PoSt",
        "header": [],
        "body": {
          "raw": "{\"name\":\"rex\"}",
          "urlencoded": [
            {"key": "name", "value": "rex"},
            {"key": "kind", "value": "dog"}
          ]
        },
        "url": {"raw": "https://example.com/pets"}
      }
    }
  ]
}
`

const usersCollection = `
{
  "info": {"_postman_id": "col-users", "name": "Users API"},
  "item": [
    {
      "id": "item-whoami",
      "name": "Who am I",
      "request": {
        "method": "UNKNOWN",
        "url": {"raw": "https://example.com/me"}
      }
    }
  ]
}
`

func TestImportDocument(t *testing.T) {
	t.Parallel()
	col, err := ImportDocument([]byte(petsCollection))
	assert.NoError(t, err)
	assert.Equal(t, "col-pets", col.Directory.ID)
	assert.Equal(t, "Pets API", col.Directory.Name)
	assert.Equal(t, []string{"item-list", "item-create"}, col.Directory.Locations)
	assert.Len(t, col.Locations, 2)

	list := col.Locations[0]
	assert.Equal(t, "item-list", list.ID)
	assert.Equal(t, "List pets", list.Name)
	assert.Equal(t, "https://example.com/pets", list.URL)
	assert.Equal(t, MethodGet, list.Method)
	assert.Equal(t, ContentTypeJSON, list.ContentType)
	assert.Equal(t, request.Values{{Key: "Accept", Value: "application/json"}}, list.Header)

	create := col.Locations[1]
	assert.Equal(t, MethodPost, create.Method)
	assert.Equal(t, `{"name":"rex"}`, create.Body)
	assert.Equal(t, request.Values{
		{Key: "name", Value: "rex"},
		{Key: "kind", Value: "dog"},
	}, create.FormParams)
}

func TestImportDocumentMalformed(t *testing.T) {
	t.Parallel()
	_, err := ImportDocument([]byte(`{"info":`))
	assert.Error(t, err)
	assert.ErrorAs(t, err, &ImportError{})
	assert.Contains(t, err.Error(), "cannot import collection")
}

func TestImportDocumentUnknownMethod(t *testing.T) {
	t.Parallel()
	col, err := ImportDocument([]byte(usersCollection))
	assert.NoError(t, err)
	assert.Equal(t, MethodGet, col.Locations[0].Method)
}

func TestImportArchive(t *testing.T) {
	t.Parallel()
	archive := makeArchive(t, map[string]string{
		"pets.json":  petsCollection,
		"users.json": usersCollection,
	})

	cols, err := ImportArchive(bytes.NewReader(archive), int64(len(archive)))
	assert.NoError(t, err)
	assert.Len(t, cols, 2)

	byID := map[string]ImportedCollection{}
	for _, col := range cols {
		byID[col.Directory.ID] = col
	}
	assert.Len(t, byID["col-pets"].Locations, 2)
	assert.Len(t, byID["col-users"].Locations, 1)
}

func TestImportArchiveMalformedDocumentAbortsAll(t *testing.T) {
	t.Parallel()
	archive := makeArchive(t, map[string]string{
		"good.json":   petsCollection,
		"broken.json": `{"item": [`,
		"empty.json":  ``,
	})

	cols, err := ImportArchive(bytes.NewReader(archive), int64(len(archive)))
	assert.Nil(t, cols)
	assert.Error(t, err)
	assert.ErrorAs(t, err, &ImportError{})
	assert.Contains(t, err.Error(), "2 errors occurred")
	assert.Contains(t, err.Error(), `file "broken.json"`)
	assert.Contains(t, err.Error(), `file "empty.json"`)
}

func TestImportArchiveNotZip(t *testing.T) {
	t.Parallel()
	data := []byte("not an archive")
	_, err := ImportArchive(bytes.NewReader(data), int64(len(data)))
	assert.Error(t, err)
	assert.ErrorAs(t, err, &ImportError{})
}

func TestImportArchiveThenMerge(t *testing.T) {
	t.Parallel()
	archive := makeArchive(t, map[string]string{"pets.json": petsCollection})
	cols, err := ImportArchive(bytes.NewReader(archive), int64(len(archive)))
	assert.NoError(t, err)

	ws := NewWorkspace()
	ws.Merge(cols)
	assert.Equal(t, 2, ws.Store.Len())

	// importing the same archive twice overwrites, nothing is duplicated
	ws.Merge(cols)
	assert.Equal(t, 2, ws.Store.Len())
	assert.Len(t, ws.Directories, 1)
}

func makeArchive(t *testing.T, files map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	writer := zip.NewWriter(&buf)
	for name, content := range files {
		file, err := writer.Create(name)
		assert.NoError(t, err)
		_, err = file.Write([]byte(content))
		assert.NoError(t, err)
	}
	assert.NoError(t, writer.Close())
	return buf.Bytes()
}
