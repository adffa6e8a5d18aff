package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/drsixthsense/lifelog-public/journal"
)

// profileForm collects the ten profile fields. The same form backs the
// first-launch setup and the edit dialog; only what happens on save
// differs.
type profileForm struct {
	nameEntry     *widget.Entry
	ageEntry      *widget.Entry
	sexEntry      *widget.Entry
	workEntry     *widget.Entry
	hobbyEntry    *widget.Entry
	languageSel   *widget.Select
	notionToken   *widget.Entry
	notionDB      *widget.Entry
	chatGPTKey    *widget.Entry
	geminiKey     *widget.Entry
}

func newProfileForm(initial *journal.Profile) *profileForm {
	pf := &profileForm{
		nameEntry:   widget.NewEntry(),
		ageEntry:    widget.NewEntry(),
		sexEntry:    widget.NewEntry(),
		workEntry:   widget.NewEntry(),
		hobbyEntry:  widget.NewEntry(),
		languageSel: widget.NewSelect(journal.Languages, nil),
		notionToken: widget.NewPasswordEntry(),
		notionDB:    widget.NewEntry(),
		chatGPTKey:  widget.NewPasswordEntry(),
		geminiKey:   widget.NewPasswordEntry(),
	}

	if initial != nil {
		pf.nameEntry.SetText(initial.Name)
		pf.ageEntry.SetText(initial.Age)
		pf.sexEntry.SetText(initial.Sex)
		pf.workEntry.SetText(initial.Work)
		pf.hobbyEntry.SetText(initial.Hobby)
		pf.notionToken.SetText(initial.NotionToken)
		pf.notionDB.SetText(initial.NotionDatabaseID)
		pf.chatGPTKey.SetText(initial.ChatGPTAPIKey)
		pf.geminiKey.SetText(initial.GeminiAPIKey)
	}
	if initial != nil && initial.Language != "" {
		pf.languageSel.SetSelected(initial.Language)
	} else {
		pf.languageSel.SetSelected(journal.DefaultLanguage)
	}

	return pf
}

func (pf *profileForm) items() []*widget.FormItem {
	return []*widget.FormItem{
		widget.NewFormItem("Name", pf.nameEntry),
		widget.NewFormItem("Age", pf.ageEntry),
		widget.NewFormItem("Sex", pf.sexEntry),
		widget.NewFormItem("Work", pf.workEntry),
		widget.NewFormItem("Hobby", pf.hobbyEntry),
		widget.NewFormItem("Language", pf.languageSel),
		widget.NewFormItem("Notion Token (Optional)", pf.notionToken),
		widget.NewFormItem("Notion Database ID (Optional)", pf.notionDB),
		widget.NewFormItem("ChatGPT API Key (Optional)", pf.chatGPTKey),
		widget.NewFormItem("Gemini API Key (Optional)", pf.geminiKey),
	}
}

func (pf *profileForm) profile() *journal.Profile {
	return &journal.Profile{
		Name:             pf.nameEntry.Text,
		Age:              pf.ageEntry.Text,
		Sex:              pf.sexEntry.Text,
		Work:             pf.workEntry.Text,
		Hobby:            pf.hobbyEntry.Text,
		Language:         pf.languageSel.Selected,
		NotionToken:      pf.notionToken.Text,
		NotionDatabaseID: pf.notionDB.Text,
		ChatGPTAPIKey:    pf.chatGPTKey.Text,
		GeminiAPIKey:     pf.geminiKey.Text,
	}
}

// showProfileSetup fills the window with the first-launch setup form and
// switches to the journal screen once the profile is saved.
func (a *App) showProfileSetup() {
	pf := newProfileForm(nil)

	form := &widget.Form{
		Items:      pf.items(),
		SubmitText: "Save Profile",
		OnSubmit: func() {
			if err := a.store.SaveProfile(pf.profile()); err != nil {
				a.logger.Error("Failed to save profile: %v", err)
				dialog.ShowError(err, a.window)
				return
			}
			a.logger.Info("Profile saved")
			a.showJournal()
		},
	}

	content := container.NewVBox(
		widget.NewLabelWithStyle("Set Up Your Profile", fyne.TextAlignCenter, fyne.TextStyle{Bold: true}),
		form,
	)
	a.window.SetContent(container.NewVScroll(container.NewPadded(content)))
}

// showProfileEdit opens the settings dialog over the journal screen with
// the stored values pre-filled.
func (a *App) showProfileEdit() {
	profile, err := a.store.LoadProfile()
	if err != nil {
		a.logger.Error("Failed to load profile: %v", err)
		dialog.ShowError(err, a.window)
		return
	}

	pf := newProfileForm(profile)
	formDialog := dialog.NewForm("Edit Profile", "Save Changes", "Cancel", pf.items(), func(save bool) {
		if !save {
			return
		}
		if err := a.store.SaveProfile(pf.profile()); err != nil {
			a.logger.Error("Failed to save profile: %v", err)
			dialog.ShowError(err, a.window)
			return
		}
		a.logger.Info("Profile updated")
	}, a.window)
	formDialog.Resize(fyne.NewSize(420, 560))
	formDialog.Show()
}
