package models

// Album is a named collection of assets read fresh from the metadata store
// on every run. It has no identity of its own in the export tree beyond the
// directory derived from its name.
type Album struct {
	// ID is the opaque identifier assigned by the metadata store.
	ID string `json:"id"`

	// Name is the display name of the album as entered by the user.
	// It may contain characters that are illegal in directory names;
	// the export directory is derived from it via sanitization.
	Name string `json:"name"`

	// OwnerID is the identifier of the user who owns the album.
	// Empty when the store schema exposes no owner column.
	OwnerID string `json:"owner_id,omitempty"`

	// Assets are the member assets of the album in store order
	// (album name, then internal path).
	Assets []Asset `json:"assets,omitempty"`
}

// Asset is one media file tracked by the metadata store. The engine treats
// it as immutable except for its size, which may change upstream between
// runs (re-upload or edit) and is detected by the planner.
type Asset struct {
	// ID is the opaque identifier assigned by the metadata store.
	ID string `json:"id"`

	// OwnerID is the identifier of the owning user.
	OwnerID string `json:"owner_id,omitempty"`

	// InternalPath is the storage path recorded in the metadata store,
	// in the store's internal convention (e.g. "upload/upload/<uuid>.jpg"
	// or an absolute container path). It is never used directly; the
	// resolver maps it onto the mounted library root.
	InternalPath string `json:"internal_path"`

	// Size is the byte size recorded in the metadata store, or 0 when the
	// schema exposes no size column. The planner compares on-disk sizes,
	// so a zero here does not affect sync decisions.
	Size int64 `json:"size"`
}
