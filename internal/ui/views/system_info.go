package views

import "github.com/pterm/pterm"

type SystemInfoItem struct {
	ConfigPath  string
	Database    string
	DBLocation  string
	DBExists    bool // true = Found, false = Not Found
	Realtime    string
	Storage     string
	SessionFile string
	SignedInAs  string
	LogFile     string
	AppDataDir  string
}

func RenderSystemInfo(data SystemInfoItem) error {
	dbStatus := pterm.Green("Found")
	if !data.DBExists {
		dbStatus = pterm.Red("Not Found (Will be created)")
	}

	signedIn := data.SignedInAs
	if signedIn == "" {
		signedIn = pterm.Gray("nobody")
	}

	tableData := pterm.TableData{
		{"Configuration File", data.ConfigPath},
		{"Database", data.Database},
		{"Database Location", data.DBLocation},
		{"Database Status", dbStatus},
		{"Change Feed", data.Realtime},
		{"File Storage", data.Storage},
		{"Session File", data.SessionFile},
		{"Signed In As", signedIn},
		{"Log File", data.LogFile},
		{"AppData Directory", data.AppDataDir},
	}

	return pterm.DefaultTable.WithData(tableData).Render()
}
