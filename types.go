package sharepoint

import "time"

// WebInfo describes a web as returned by the server.
type WebInfo struct {
	ID                   string    `json:"Id"`
	Title                string    `json:"Title"`
	Description          string    `json:"Description"`
	URL                  string    `json:"Url"`
	ServerRelativeURL    string    `json:"ServerRelativeUrl"`
	WebTemplate          string    `json:"WebTemplate"`
	Configuration        int       `json:"Configuration"`
	Language             int       `json:"Language"`
	Created              time.Time `json:"Created"`
	LastItemModifiedDate time.Time `json:"LastItemModifiedDate"`
	NoCrawl              bool      `json:"NoCrawl"`
	RecycleBinEnabled    bool      `json:"RecycleBinEnabled"`
	QuickLaunchEnabled   bool      `json:"QuickLaunchEnabled"`
}

// WebCreateInfo holds the optional parameters for creating a web. The zero
// value selects the defaults used by Webs.Add: the "STS" team-site template,
// language 1033 and unique permissions.
type WebCreateInfo struct {
	Description        string
	Template           string
	Language           int
	InheritPermissions bool
}

// UserInfo describes a site user.
type UserInfo struct {
	ID            int    `json:"Id"`
	LoginName     string `json:"LoginName"`
	Title         string `json:"Title"`
	Email         string `json:"Email"`
	IsSiteAdmin   bool   `json:"IsSiteAdmin"`
	PrincipalType int    `json:"PrincipalType"`
}

// ListInfo describes a list.
type ListInfo struct {
	ID           string `json:"Id"`
	Title        string `json:"Title"`
	Description  string `json:"Description"`
	BaseTemplate int    `json:"BaseTemplate"`
	ItemCount    int    `json:"ItemCount"`
	Hidden       bool   `json:"Hidden"`
}

// StorageEntity is a key-scoped value stored at the tenant app catalog.
type StorageEntity struct {
	Value       string `json:"Value"`
	Comment     string `json:"Comment"`
	Description string `json:"Description"`
}

// ChangeQuery selects which change-log entries GetChanges returns. Only the
// flags set to true are serialized, matching the server's expectations for
// the SP.ChangeQuery payload.
type ChangeQuery struct {
	Add                bool         `json:"Add,omitempty"`
	Update             bool         `json:"Update,omitempty"`
	DeleteObject       bool         `json:"DeleteObject,omitempty"`
	Rename             bool         `json:"Rename,omitempty"`
	Restore            bool         `json:"Restore,omitempty"`
	Move               bool         `json:"Move,omitempty"`
	Item               bool         `json:"Item,omitempty"`
	List               bool         `json:"List,omitempty"`
	Web                bool         `json:"Web,omitempty"`
	Site               bool         `json:"Site,omitempty"`
	File               bool         `json:"File,omitempty"`
	Folder             bool         `json:"Folder,omitempty"`
	Alert              bool         `json:"Alert,omitempty"`
	User               bool         `json:"User,omitempty"`
	Group              bool         `json:"Group,omitempty"`
	GroupMembershipAdd bool         `json:"GroupMembershipAdd,omitempty"`
	ContentType        bool         `json:"ContentType,omitempty"`
	Field              bool         `json:"Field,omitempty"`
	SecurityPolicy     bool         `json:"SecurityPolicy,omitempty"`
	SystemUpdate       bool         `json:"SystemUpdate,omitempty"`
	RoleAssignmentAdd  bool         `json:"RoleAssignmentAdd,omitempty"`
	RoleDefinitionAdd  bool         `json:"RoleDefinitionAdd,omitempty"`
	ChangeTokenStart   *ChangeToken `json:"ChangeTokenStart,omitempty"`
	ChangeTokenEnd     *ChangeToken `json:"ChangeTokenEnd,omitempty"`
}

// ChangeToken bounds a ChangeQuery to a change-log position.
type ChangeToken struct {
	StringValue string `json:"StringValue"`
}

// ThemeInfo holds the parameters for Web.ApplyTheme. The palette and font
// scheme URLs are server-relative.
type ThemeInfo struct {
	ColorPaletteURL    string
	FontSchemeURL      string
	BackgroundImageURL string
	ShareGenerated     bool
}
