package queue

const TypeBulkExport = "export:bulk"

type BulkExportPayload struct {
	ExportID string `json:"export_id"`
	UserID   string `json:"user_id"`
}
