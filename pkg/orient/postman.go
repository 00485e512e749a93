package orient

// Postman collection export format, v2.1 wire shape reduced to the fields
// the import uses. Unknown fields are ignored, missing fields stay zero.
type postmanDocument struct {
	Info postmanInfo   `json:"info"`
	Item []postmanItem `json:"item"`
}

type postmanInfo struct {
	PostmanID string `json:"_postman_id"`
	Name      string `json:"name"`
}

type postmanItem struct {
	ID      string         `json:"id"`
	Name    string         `json:"name"`
	Request postmanRequest `json:"request"`
}

type postmanRequest struct {
	Method string      `json:"method"`
	Header []postmanKV `json:"header"`
	Body   postmanBody `json:"body"`
	URL    postmanURL  `json:"url"`
}

type postmanURL struct {
	Raw string `json:"raw"`
}

type postmanBody struct {
	Raw        string      `json:"raw"`
	URLEncoded []postmanKV `json:"urlencoded"`
}

type postmanKV struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}
