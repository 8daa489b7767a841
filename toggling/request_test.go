package toggling_test

import (
	"testing"

	"github.com/joshyorko/previewctl/hamlet"
	"github.com/joshyorko/previewctl/registry"
	"github.com/joshyorko/previewctl/toggling"
)

func TestNewRequestChecksEverything(t *testing.T) {
	must_be, _ := hamlet.Specifications(t)

	request := toggling.NewRequest("camera", toggling.On)
	class, _ := registry.Lookup("camera")
	must_be.Equal(class.ParameterNames(), request.Selected(class))
}

func TestWithoutDoesNotTouchOriginal(t *testing.T) {
	must_be, _ := hamlet.Specifications(t)

	original := toggling.NewRequest("camera", toggling.On)
	derived := original.Without("show_path_in_preview")
	class, _ := registry.Lookup("camera")

	must_be.Equal(3, len(original.Selected(class)))
	must_be.Equal([]string{"show_camera_body_in_preview", "show_frustum_in_preview"}, derived.Selected(class))
}

func TestSingleParameterClassIgnoresCheckboxes(t *testing.T) {
	must_be, _ := hamlet.Specifications(t)

	request := toggling.NewRequest("sphere", toggling.Off).Without(registry.BoundingBox)
	class, _ := registry.Lookup("sphere")
	must_be.Equal([]string{registry.BoundingBox}, request.Selected(class))
}

func TestFingerprintIsStable(t *testing.T) {
	must_be, wont_be := hamlet.Specifications(t)

	first := toggling.NewRequest("camera", toggling.Toggle)
	second := toggling.NewRequest("camera", toggling.Toggle)
	must_be.Equal(first.Fingerprint(), second.Fingerprint())
	must_be.Equal(16, len(first.Fingerprint()))
	wont_be.Equal(first.Fingerprint(), first.Without("show_camera_body_in_preview").Fingerprint())
	wont_be.Equal(first.Fingerprint(), toggling.NewRequest("camera", toggling.On).Fingerprint())
}

func TestParseAction(t *testing.T) {
	must_be, wont_be := hamlet.Specifications(t)

	for _, action := range toggling.Actions() {
		parsed, err := toggling.ParseAction(action.String())
		must_be.Nil(err)
		must_be.Equal(action, parsed)
	}
	parsed, err := toggling.ParseAction(" Toggle ")
	must_be.Nil(err)
	must_be.Equal(toggling.Toggle, parsed)

	_, err = toggling.ParseAction("flip")
	wont_be.Nil(err)
	must_be.Equal("Toggle", toggling.Toggle.Label())
	must_be.Equal("applying", toggling.Applying.String())
}
