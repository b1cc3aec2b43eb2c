package ads

// Violation reasons surfaced to API callers. The wording is part of the API
// contract; tests assert on it.
const (
	MsgNameRequired          = "name is required and must be at most 100 characters"
	MsgTargetURLInvalid      = "target_url must be a valid absolute URL"
	MsgFolderSelfParent      = "folder cannot be a parent to itself"
	MsgFolderCycle           = "folder cannot be moved under its own descendant"
	MsgOnlyOneRootFolder     = "only one active root folder is allowed"
	MsgRootFolderCantDelete  = "the root folder cannot be deactivated"
	MsgParentMustBeActive    = "parent folder does not exist or is inactive"
	MsgAdFolderMustBeActive  = "ad has to belong to an active folder"
	MsgRootFolderDoesntExist = "Root folder does not exist."
)
