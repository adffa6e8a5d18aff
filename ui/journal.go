package ui

import (
	"context"
	"fmt"
	"io"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/drsixthsense/lifelog-public/journal"
	"github.com/drsixthsense/lifelog-public/pipeline"
	"github.com/drsixthsense/lifelog-public/utils"
)

// JournalView is the single main screen: pick a photo, add a comment,
// generate, read the result.
type JournalView struct {
	app *App

	languageSelect *widget.Select
	providerSelect *widget.Select
	commentEntry   *widget.Entry
	pickButton     *widget.Button
	generateButton *widget.Button
	resetButton    *widget.Button
	statusLabel    *widget.Label
	busyBar        *widget.ProgressBarInfinite
	preview        *canvas.Image
	previewBox     *fyne.Container

	imageBytes []byte
	imageName  string
}

// NewJournalView creates the journal screen.
func NewJournalView(app *App) *JournalView {
	return &JournalView{app: app}
}

// Build builds the journal screen UI.
func (jv *JournalView) Build() fyne.CanvasObject {
	jv.languageSelect = widget.NewSelect(journal.Languages, nil)
	jv.languageSelect.SetSelected(jv.defaultLanguage())

	providers := make([]string, 0, len(pipeline.ProviderKinds))
	for _, kind := range pipeline.ProviderKinds {
		providers = append(providers, string(kind))
	}
	jv.providerSelect = widget.NewSelect(providers, func(string) {
		jv.updateGenerateState()
	})
	jv.providerSelect.SetSelected(jv.defaultProvider())

	jv.commentEntry = widget.NewMultiLineEntry()
	jv.commentEntry.SetPlaceHolder("Add a comment...")
	jv.commentEntry.Wrapping = fyne.TextWrapWord

	jv.pickButton = widget.NewButtonWithIcon("Select Image", theme.FolderOpenIcon(), jv.pickImage)

	jv.preview = &canvas.Image{FillMode: canvas.ImageFillContain}
	jv.preview.SetMinSize(fyne.NewSize(0, 200))
	jv.previewBox = container.NewStack()

	jv.generateButton = widget.NewButtonWithIcon("Generate Description", theme.ConfirmIcon(), jv.generate)
	jv.generateButton.Importance = widget.HighImportance

	jv.resetButton = widget.NewButton("New Conversation", func() {
		jv.app.pipe.ResetConversation()
		jv.setStatus("Conversation reset")
	})

	jv.statusLabel = widget.NewLabel("")
	jv.busyBar = widget.NewProgressBarInfinite()
	jv.busyBar.Hide()

	settingsButton := widget.NewButtonWithIcon("", theme.SettingsIcon(), func() {
		jv.app.showProfileEdit()
	})

	topBar := container.NewBorder(nil, nil,
		widget.NewLabelWithStyle("LifeLog", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		settingsButton,
	)

	selectors := container.NewVBox(
		widget.NewForm(
			widget.NewFormItem("Language", jv.languageSelect),
			widget.NewFormItem("LLM", jv.providerSelect),
		),
	)

	jv.updateGenerateState()

	content := container.NewVBox(
		selectors,
		jv.pickButton,
		jv.previewBox,
		jv.commentEntry,
		jv.generateButton,
		jv.resetButton,
		jv.busyBar,
		jv.statusLabel,
	)

	return container.NewBorder(topBar, nil, nil, nil, container.NewVScroll(content))
}

// defaultLanguage prefers the profile language over the config default.
func (jv *JournalView) defaultLanguage() string {
	if profile, err := jv.app.store.LoadProfile(); err == nil && profile.Language != "" {
		return profile.Language
	}
	if jv.app.config.UI.DefaultLanguage != "" {
		return jv.app.config.UI.DefaultLanguage
	}
	return journal.DefaultLanguage
}

func (jv *JournalView) defaultProvider() string {
	if jv.app.config.UI.DefaultProvider != "" {
		return jv.app.config.UI.DefaultProvider
	}
	return string(pipeline.ProviderChatGPT)
}

// pickImage opens the file dialog. There is no camera on the desktop; the
// gallery picker is the only image source.
func (jv *JournalView) pickImage() {
	fileDialog := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			dialog.ShowError(err, jv.app.window)
			return
		}
		if reader == nil {
			return // cancelled
		}
		defer reader.Close()

		data, err := io.ReadAll(reader)
		if err != nil {
			dialog.ShowError(fmt.Errorf("failed to read image: %w", err), jv.app.window)
			return
		}

		jv.imageBytes = data
		jv.imageName = reader.URI().Name()
		jv.showPreview()
		jv.updateGenerateState()
	}, jv.app.window)
	fileDialog.SetFilter(storage.NewExtensionFileFilter([]string{".png", ".jpg", ".jpeg", ".gif"}))
	fileDialog.Show()
}

func (jv *JournalView) showPreview() {
	jv.preview.Resource = fyne.NewStaticResource(jv.imageName, jv.imageBytes)
	jv.preview.Refresh()
	jv.previewBox.Objects = []fyne.CanvasObject{jv.preview}
	jv.previewBox.Refresh()
	jv.setStatus(fmt.Sprintf("Selected: %s", jv.imageName))
}

// updateGenerateState enables the button per provider: ChatGPT needs an
// image, Gemini also takes text-only turns.
func (jv *JournalView) updateGenerateState() {
	if jv.generateButton == nil {
		return
	}
	if jv.imageBytes == nil && jv.providerSelect.Selected != string(pipeline.ProviderGemini) {
		jv.generateButton.Disable()
		return
	}
	jv.generateButton.Enable()
}

// generate dispatches one submission through the pipeline and renders the
// result. The goroutine is the single suspension point; everything UI
// happens back on the Fyne thread via fyne.Do.
func (jv *JournalView) generate() {
	sub := pipeline.Submission{
		Provider: pipeline.ProviderKind(jv.providerSelect.Selected),
		Language: jv.languageSelect.Selected,
		Image:    jv.imageBytes,
		Comment:  jv.commentEntry.Text,
	}

	if sub.Provider == pipeline.ProviderChatGPT && sub.Image == nil {
		dialog.ShowInformation("LifeLog", "Please select an image for ChatGPT.", jv.app.window)
		return
	}

	jv.setBusy(true)
	jv.setStatus("Processing your entry...")

	utils.SafeGo(jv.app.logger, "journal submission", func() {
		result := jv.app.pipe.Run(context.Background(), sub)

		fyne.Do(func() {
			jv.setBusy(false)
			jv.renderResult(sub.Provider, result)
		})
	})
}

func (jv *JournalView) renderResult(provider pipeline.ProviderKind, result pipeline.Result) {
	if result.State != pipeline.StateDone {
		jv.setStatus("Submission failed")
		jv.app.logger.Error("Submission failed: %v", result.Err)
		dialog.ShowError(fmt.Errorf("failed to generate a diary entry, please try again"), jv.app.window)
		return
	}

	jv.setStatus("Entry published")
	if result.PublishErr != nil {
		// Gemini path: the text is still worth showing, the publish
		// problem gets its own notice.
		jv.setStatus("Entry generated, Notion publish failed")
		dialog.ShowInformation("Notion", "Failed to send the entry to Notion.", jv.app.window)
	}

	response := widget.NewLabel(result.Text)
	response.Wrapping = fyne.TextWrapWord
	dialog.ShowCustom(
		fmt.Sprintf("Generated Description (%s)", provider),
		"OK",
		container.NewVScroll(response),
		jv.app.window,
	)
}

func (jv *JournalView) setBusy(busy bool) {
	if busy {
		jv.busyBar.Show()
		jv.busyBar.Start()
		jv.generateButton.Disable()
		return
	}
	jv.busyBar.Stop()
	jv.busyBar.Hide()
	jv.updateGenerateState()
}

func (jv *JournalView) setStatus(msg string) {
	jv.statusLabel.SetText(msg)
}
