package cmd

import (
	"bytes"
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/joshyorko/previewctl/hamlet"
	"github.com/joshyorko/previewctl/operations"
	"github.com/joshyorko/previewctl/registry"
	"github.com/joshyorko/previewctl/rpc"
	"github.com/joshyorko/previewctl/rpc/rpctest"
	"github.com/joshyorko/previewctl/toggling"
	"gopkg.in/yaml.v2"
)

func TestCanFindParametersByNameOrLabel(t *testing.T) {
	must_be, wont_be := hamlet.Specifications(t)

	camera, ok := registry.Lookup("camera")
	must_be.True(ok)

	name, err := parameterByLabel(camera, "Frustum")
	must_be.Nil(err)
	must_be.Equal("show_frustum_in_preview", name)

	name, err = parameterByLabel(camera, " show_path_in_preview ")
	must_be.Nil(err)
	must_be.Equal("show_path_in_preview", name)

	_, err = parameterByLabel(camera, "profile edge")
	wont_be.Nil(err)

	shape, _ := registry.Lookup("simple_shape_shader")
	name, err = parameterByLabel(shape, "Profile edge")
	must_be.Nil(err)
	must_be.Equal("draw_shape_edges_in_preview", name)
	name, err = parameterByLabel(shape, "b-box")
	must_be.Nil(err)
	must_be.Equal(registry.BoundingBox, name)
}

func TestBuildingRequestsFromFlags(t *testing.T) {
	must_be, wont_be := hamlet.Specifications(t)

	request, err := buildRequest("camera", "toggle", []string{"frustum"})
	must_be.Nil(err)
	must_be.Equal(toggling.Toggle, request.Action)
	must_be.Equal(false, request.Checked["show_frustum_in_preview"])
	must_be.Equal(true, request.Checked["show_camera_body_in_preview"])
	must_be.Equal(true, request.Checked["show_path_in_preview"])

	_, err = buildRequest("teapot", "on", nil)
	wont_be.Nil(err)
	must_be.True(strings.Contains(err.Error(), "bounding_box, card, cube"))

	_, err = buildRequest("obj_reader", "sideways", nil)
	wont_be.Nil(err)

	_, err = buildRequest("simple_shape_shader", "on", []string{"frustum"})
	wont_be.Nil(err)
}

func TestSkipIsRejectedForSingleParameterClasses(t *testing.T) {
	must_be, wont_be := hamlet.Specifications(t)

	for _, skip := range []string{"b-box", registry.BoundingBox, "anything"} {
		_, err := buildRequest("sphere", "off", []string{skip})
		wont_be.Nil(err)
		must_be.True(strings.Contains(err.Error(), "single parameter"))
	}

	_, err := buildRequest("obj_reader", "on", []string{"visible"})
	wont_be.Nil(err)

	request, err := buildRequest("sphere", "off", nil)
	must_be.Nil(err)
	must_be.Equal(map[string]bool{registry.BoundingBox: true}, request.Checked)
}

func TestDryrunPlanListsOnlyCheckedParameters(t *testing.T) {
	must_be, wont_be := hamlet.Specifications(t)

	request, err := buildRequest("camera", "off", []string{"body"})
	must_be.Nil(err)

	sink := &bytes.Buffer{}
	describePlan(sink, request)
	output := sink.String()
	must_be.True(strings.HasPrefix(output, "Off on camera nodes (CAMERAS):"))
	must_be.True(strings.Contains(output, "show_frustum_in_preview"))
	wont_be.True(strings.Contains(output, "show_camera_body_in_preview"))
}

func TestHeadlessApplyWritesAndReports(t *testing.T) {
	must_be, wont_be := hamlet.Specifications(t)

	host := rpctest.NewHost()
	first := host.AddNode("camera", "Camera A", map[string]string{"show_camera_body_in_preview": "1", "show_path_in_preview": "0"})
	second := host.AddNode("camera", "Camera B", map[string]string{"show_camera_body_in_preview": "0", "show_path_in_preview": "1"})
	server := httptest.NewServer(host)
	defer server.Close()

	client, err := rpc.Dial(server.URL, time.Second)
	must_be.Nil(err)
	defer client.Close()

	request, err := buildRequest("camera", "toggle", []string{"frustum"})
	must_be.Nil(err)

	sink := &bytes.Buffer{}
	err = runApply(context.Background(), sink, client, request, false)
	must_be.Nil(err)

	must_be.Equal("0", host.Param(first, "show_camera_body_in_preview"))
	must_be.Equal("1", host.Param(first, "show_path_in_preview"))
	must_be.Equal("1", host.Param(second, "show_camera_body_in_preview"))
	must_be.Equal("0", host.Param(second, "show_path_in_preview"))
	must_be.Equal(4, len(host.Calls("node.set_param")))

	output := sink.String()
	must_be.True(strings.Contains(output, "Camera B"))
	must_be.True(strings.Contains(output, "Toggle: 4 parameter writes on 2 camera nodes"))
	wont_be.True(strings.Contains(output, "frustum"))
}

func TestHeadlessApplyStopsOnRemoteFault(t *testing.T) {
	must_be, wont_be := hamlet.Specifications(t)

	host := rpctest.NewHost()
	host.AddNode("lake", "Lake 01", map[string]string{"handle_in_preview": "0"})
	host.Fail("node.set_param", rpctest.CodeInvalidParams, "locked")
	server := httptest.NewServer(host)
	defer server.Close()

	client, err := rpc.Dial(server.URL, time.Second)
	must_be.Nil(err)
	defer client.Close()

	sink := &bytes.Buffer{}
	err = runApply(context.Background(), sink, client, toggling.NewRequest("lake", toggling.On), false)
	wont_be.Nil(err)
	must_be.Equal(rpc.RemoteApiError, rpc.KindOf(err))
	must_be.True(strings.Contains(sink.String(), "0 parameter writes"))
}

func TestClassesListing(t *testing.T) {
	must_be, _ := hamlet.Specifications(t)

	sink := &bytes.Buffer{}
	must_be.Nil(listClassesYaml(sink))

	listing := []classListing{}
	must_be.Nil(yaml.Unmarshal(sink.Bytes(), &listing))
	must_be.Equal(len(registry.Classes()), len(listing))
	must_be.Equal("bounding_box", listing[0].Name)
	must_be.Equal("objects", listing[0].Group)
	must_be.Equal([]string{registry.MainHidden}, listing[0].Parameters)
	must_be.Equal("camera", listing[len(listing)-1].Name)
	must_be.Equal("cameras", listing[len(listing)-1].Group)

	sink.Reset()
	listClassesText(sink)
	lines := strings.Split(strings.TrimSpace(sink.String()), "\n")
	must_be.Equal(len(registry.Classes())+2, len(lines))
	must_be.True(strings.HasPrefix(lines[2], "bounding_box"))
	must_be.True(strings.HasPrefix(lines[len(lines)-1], "camera"))
}

func TestDiagnosisOutputMarksFailures(t *testing.T) {
	must_be, wont_be := hamlet.Specifications(t)

	diagnosis := operations.Diagnosis{
		Endpoint: "ws://localhost:1/rpc",
		Checks: []operations.Check{
			{Name: "endpoint", Ok: true, Detail: "project root answered"},
			{Name: "camera", Ok: false, Detail: "ConnectionError"},
		},
	}
	sink := &bytes.Buffer{}
	showDiagnosis(sink, diagnosis)
	output := sink.String()
	must_be.True(strings.Contains(output, "ws://localhost:1/rpc"))
	must_be.True(strings.Contains(output, "FAIL"))
	wont_be.True(diagnosis.Healthy())
}
