package displayinfo

// GetOutput for GET /display-info
type GetOutput struct {
	Body DisplayInfo
}

// SaveOutput for the PUT and DELETE operations
type SaveOutput struct {
	Body SaveResult
}

// FieldsOutput for GET /display-info/fields
type FieldsOutput struct {
	Body Fields
}
