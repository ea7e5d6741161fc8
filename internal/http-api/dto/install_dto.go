package dto

// TrackInstallRequest: platform signals reported by the client on load
type TrackInstallRequest struct {
	CanInstall  bool   `json:"can_install"`
	IsInstalled bool   `json:"is_installed"`
	Platform    string `json:"platform"` // android, ios, desktop, unknown
}

// InstallStateResponse: current install state plus the prompt decision
type InstallStateResponse struct {
	CanInstall       bool   `json:"can_install"`
	IsInstalled      bool   `json:"is_installed"`
	Platform         string `json:"platform"`
	PromptShown      bool   `json:"prompt_shown"`
	ShouldShowPrompt bool   `json:"should_show_prompt"`
}

// InstallPromptResponse: outcome of showing the install prompt
type InstallPromptResponse struct {
	Accepted bool `json:"accepted"`
}
