// Package consts contains constants for the forcesub domain
package consts

// Command represents a bot command
type Command struct {
	Name        string
	Description string
}

// Bot commands
var (
	CommandStart      = Command{Name: "start", Description: "Start the bot"}
	CommandHelp       = Command{Name: "help", Description: "Show help message"}
	CommandAdd        = Command{Name: "addforcesub", Description: "Add a required channel"}
	CommandAddPrivate = Command{Name: "addprivateforcesub", Description: "Add a private required channel"}
	CommandRemove     = Command{Name: "removeforcesub", Description: "Remove a required channel"}
	CommandList       = Command{Name: "listforcesub", Description: "List required channels"}
	CommandClear      = Command{Name: "clearforcesub", Description: "Remove all required channels"}
	CommandGroups     = Command{Name: "groups", Description: "List gated groups (owner only)"}
)

// AllCommands contains all available bot commands for menu registration
var AllCommands = []Command{
	CommandStart,
	CommandHelp,
	CommandAdd,
	CommandAddPrivate,
	CommandRemove,
	CommandList,
	CommandClear,
	CommandGroups,
}

// VerifyCallbackPrefix prefixes the re-verify button payload, followed by the group id
const VerifyCallbackPrefix = "checksub_"
