package pagescmd

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const (
	patchPageMessageType        = "confluence.pages.patch"
	uploadAttachmentMessageType = "confluence.pages.upload_attachment"
)

// PatchPageCommand replaces the first occurrence of an exact storage-format
// fragment on the referenced page. An empty NewFragment deletes the matched
// fragment.
type PatchPageCommand struct {
	// Reference selects the page: a numeric id, a URL carrying a pageId
	// parameter, or a /display/SPACE/Title URL.
	Reference string `json:"reference"`
	// OldFragment is matched verbatim against the page body, whitespace included.
	OldFragment string `json:"old_fragment"`
	// NewFragment replaces the match; markdown input is converted before writing.
	NewFragment string `json:"new_fragment,omitempty"`
}

// Type implements command.Message.
func (PatchPageCommand) Type() string { return patchPageMessageType }

// Validate ensures the page reference and the fragment to replace are present.
func (cmd PatchPageCommand) Validate() error {
	err := validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Reference, validation.Required, validation.By(func(value any) error {
			if strings.TrimSpace(value.(string)) == "" {
				return validation.NewError("confluence.pages.patch.reference_required", "reference is required")
			}
			return nil
		})),
		validation.Field(&cmd.OldFragment, validation.Required),
	)
	if err != nil {
		return err
	}
	return nil
}

// UploadAttachmentCommand attaches a local file to the referenced page,
// replacing an existing attachment with the same filename.
type UploadAttachmentCommand struct {
	// Reference selects the page the file is attached to.
	Reference string `json:"reference"`
	// File is the local path of the file to upload.
	File string `json:"file"`
}

// Type implements command.Message.
func (UploadAttachmentCommand) Type() string { return uploadAttachmentMessageType }

// Validate ensures the page reference and file path are present.
func (cmd UploadAttachmentCommand) Validate() error {
	err := validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Reference, validation.Required, validation.By(func(value any) error {
			if strings.TrimSpace(value.(string)) == "" {
				return validation.NewError("confluence.pages.upload_attachment.reference_required", "reference is required")
			}
			return nil
		})),
		validation.Field(&cmd.File, validation.Required, validation.By(func(value any) error {
			if strings.TrimSpace(value.(string)) == "" {
				return validation.NewError("confluence.pages.upload_attachment.file_required", "file is required")
			}
			return nil
		})),
	)
	if err != nil {
		return err
	}
	return nil
}
