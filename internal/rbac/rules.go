package rbac

// Permissions guarding the import API.
const (
	PermImport        = "qml:import"
	PermQuestionRead  = "question:read"
	PermCategoryWrite = "category:write"
)

// Default policy. Viewers browse the bank, teachers also import into it.
var RolePermissions = map[string][]string{
	"viewer": {
		PermQuestionRead,
	},
	"teacher": {
		PermQuestionRead,
		PermCategoryWrite,
		PermImport,
	},
	"admin": {
		"*", // everything
	},
}
