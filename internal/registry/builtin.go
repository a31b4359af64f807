package registry

// builtins cover a stock desktop session. Directories go to the file
// manager so they open as a browse window; the portal routes any other URI
// to the default application for its type and serves as the universal
// fallback. Site registry files add type-specific handlers in front of
// both.
var builtins = []*Handler{
	{
		Name:      "file-manager",
		Service:   "org.freedesktop.FileManager1",
		Object:    "/org/freedesktop/FileManager1",
		Interface: "org.freedesktop.FileManager1",
		Method:    "ShowFolders",
		MIMETypes: []string{"inode/directory"},
	},
	{
		Name:      "portal",
		Service:   "org.freedesktop.portal.Desktop",
		Object:    "/org/freedesktop/portal/desktop",
		Interface: "org.freedesktop.portal.OpenURI",
		Method:    "OpenURI",
		MIMETypes: []string{"*/*"},
	},
}
