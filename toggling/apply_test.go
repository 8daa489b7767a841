package toggling_test

import (
	"context"
	"errors"
	"testing"

	"github.com/joshyorko/previewctl/hamlet"
	"github.com/joshyorko/previewctl/registry"
	"github.com/joshyorko/previewctl/rpc"
	"github.com/joshyorko/previewctl/toggling"
)

const (
	handle = `handle_in_preview`
	body   = `show_camera_body_in_preview`
	frust  = `show_frustum_in_preview`
	path   = `show_path_in_preview`
)

func apply(gateway *fakeGateway, request toggling.Request) (toggling.Report, error) {
	return toggling.Apply(context.Background(), gateway, request, toggling.Options{})
}

func TestSingleParameterOnOffToggle(t *testing.T) {
	must_be, _ := hamlet.Specifications(t)

	gateway := newFakeGateway()
	gateway.add("a", map[string]string{handle: "0"})
	gateway.add("b", map[string]string{handle: "1"})

	_, err := apply(gateway, toggling.NewRequest("lake", toggling.On))
	must_be.Nil(err)
	must_be.Equal([]string{"a/" + handle + "=1", "b/" + handle + "=1"}, gateway.written())
	must_be.Equal(0, gateway.reads)

	gateway.sets = nil
	_, err = apply(gateway, toggling.NewRequest("lake", toggling.Off))
	must_be.Nil(err)
	must_be.Equal([]string{"a/" + handle + "=0", "b/" + handle + "=0"}, gateway.written())

	gateway.values["a"][handle] = "1"
	gateway.sets = nil
	_, err = apply(gateway, toggling.NewRequest("lake", toggling.Toggle))
	must_be.Nil(err)
	must_be.Equal([]string{"a/" + handle + "=0", "b/" + handle + "=1"}, gateway.written())
	must_be.Equal(2, gateway.reads)
}

func TestMainHiddenShowAndHideSequences(t *testing.T) {
	must_be, _ := hamlet.Specifications(t)

	gateway := newFakeGateway()
	gateway.add("m", map[string]string{registry.MainHidden: "1"})

	_, err := apply(gateway, toggling.NewRequest("obj_reader", toggling.On))
	must_be.Nil(err)
	must_be.Equal([]string{
		"m/preview_options_main_bounding_box=0",
		"m/preview_options_main_wireframe=0",
		"m/preview_options_wf_bounding_box=0",
		"m/preview_options_main_smooth_shaded=0",
		"m/preview_options_main_textured=1",
		"m/preview_options_main_hidden=0",
	}, gateway.written())

	gateway.sets = nil
	_, err = apply(gateway, toggling.NewRequest("obj_reader", toggling.Off))
	must_be.Nil(err)
	must_be.Equal([]string{
		"m/preview_options_main_bounding_box=0",
		"m/preview_options_main_wireframe=0",
		"m/preview_options_wf_bounding_box=0",
		"m/preview_options_main_smooth_shaded=0",
		"m/preview_options_main_textured=0",
		"m/preview_options_main_hidden=1",
	}, gateway.written())
}

func TestMainHiddenToggleFollowsCurrentState(t *testing.T) {
	must_be, _ := hamlet.Specifications(t)

	gateway := newFakeGateway()
	gateway.add("hidden", map[string]string{registry.MainHidden: "1"})
	gateway.add("shown", map[string]string{registry.MainHidden: "0"})

	report, err := apply(gateway, toggling.NewRequest("obj_reader", toggling.Toggle))
	must_be.Nil(err)
	must_be.Equal(12, len(report.Writes))
	must_be.Equal("1", gateway.values["hidden"][registry.Textured])
	must_be.Equal("0", gateway.values["hidden"][registry.MainHidden])
	must_be.Equal("0", gateway.values["shown"][registry.Textured])
	must_be.Equal("1", gateway.values["shown"][registry.MainHidden])
}

func TestUncheckedParametersAreNeverWritten(t *testing.T) {
	must_be, _ := hamlet.Specifications(t)

	for _, action := range toggling.Actions() {
		gateway := newFakeGateway()
		gateway.add("c", map[string]string{body: "0", frust: "0", path: "0"})

		_, err := apply(gateway, toggling.NewRequest("camera", action).Without(frust))
		must_be.Nil(err)
		for _, write := range gateway.sets {
			must_be.True(write.Parameter != frust)
		}
		must_be.Equal(2, len(gateway.sets))
	}
}

func TestCameraToggleScenario(t *testing.T) {
	must_be, _ := hamlet.Specifications(t)

	gateway := newFakeGateway()
	gateway.add("c1", map[string]string{body: "1", frust: "1", path: "0"})
	gateway.add("c2", map[string]string{body: "0", frust: "0", path: "1"})

	request := toggling.NewRequest("camera", toggling.Toggle).Without(frust)
	report, err := apply(gateway, request)
	must_be.Nil(err)
	must_be.Equal(2, report.Nodes)
	must_be.Equal([]string{
		"c1/" + body + "=0",
		"c1/" + path + "=1",
		"c2/" + body + "=1",
		"c2/" + path + "=0",
	}, gateway.written())
	must_be.Equal("1", gateway.values["c1"][frust])
	must_be.Equal("0", gateway.values["c2"][frust])
}

func TestApplyingOnTwiceIsIdempotent(t *testing.T) {
	must_be, _ := hamlet.Specifications(t)

	gateway := newFakeGateway()
	gateway.add("m", map[string]string{registry.MainHidden: "1", registry.Textured: "0"})
	gateway.add("n", map[string]string{registry.MainHidden: "0", registry.Textured: "1"})

	_, err := apply(gateway, toggling.NewRequest("obj_reader", toggling.On))
	must_be.Nil(err)
	once := map[string]string{}
	for handle, values := range gateway.values {
		for name, value := range values {
			once[handle+"/"+name] = value
		}
	}

	_, err = apply(gateway, toggling.NewRequest("obj_reader", toggling.On))
	must_be.Nil(err)
	twice := map[string]string{}
	for handle, values := range gateway.values {
		for name, value := range values {
			twice[handle+"/"+name] = value
		}
	}
	must_be.Equal(once, twice)
}

func TestFetchFailureWritesNothing(t *testing.T) {
	must_be, _ := hamlet.Specifications(t)

	gateway := newFakeGateway()
	gateway.add("c", map[string]string{body: "0", frust: "0", path: "0"})
	gateway.fetchErr = &rpc.Error{Kind: rpc.ConnectionError, Message: "refused"}

	phases := []toggling.Phase{}
	report, err := toggling.Apply(context.Background(), gateway, toggling.NewRequest("camera", toggling.On), toggling.Options{
		OnPhase: func(phase toggling.Phase) { phases = append(phases, phase) },
	})
	must_be.Equal(rpc.ConnectionError, rpc.KindOf(err))
	must_be.Equal(0, len(gateway.sets))
	must_be.Equal(0, len(report.Writes))
	must_be.Equal([]toggling.Phase{toggling.Fetching, toggling.Idle}, phases)
}

func TestFirstWriteFailureAbortsAndKeepsEarlierWrites(t *testing.T) {
	must_be, _ := hamlet.Specifications(t)

	gateway := newFakeGateway()
	first := gateway.add("c1", map[string]string{body: "0", frust: "0", path: "0"})
	gateway.add("c2", map[string]string{body: "0", frust: "0", path: "0"})
	gateway.failOn(first, frust, &rpc.Error{Kind: rpc.RemoteApiError, Message: "locked"})

	report, err := apply(gateway, toggling.NewRequest("camera", toggling.On))
	must_be.Equal(rpc.RemoteApiError, rpc.KindOf(err))
	must_be.Equal([]string{"c1/" + body + "=1"}, gateway.written())
	must_be.Equal(1, len(report.Writes))
	must_be.Equal("1", gateway.values["c1"][body])
}

func TestKeepGoingSkipsFailingPairs(t *testing.T) {
	must_be, wont_be := hamlet.Specifications(t)

	gateway := newFakeGateway()
	first := gateway.add("c1", map[string]string{body: "0", frust: "0", path: "0"})
	gateway.add("c2", map[string]string{body: "0", frust: "0", path: "0"})
	gateway.failOn(first, frust, &rpc.Error{Kind: rpc.TimeoutError, Message: "slow"})

	written := 0
	report, err := toggling.Apply(context.Background(), gateway, toggling.NewRequest("camera", toggling.On), toggling.Options{
		KeepGoing: true,
		OnWrite:   func(toggling.Write) { written++ },
	})
	wont_be.Nil(err)
	must_be.Equal(rpc.TimeoutError, rpc.KindOf(err))
	must_be.Equal(5, len(report.Writes))
	must_be.Equal(5, written)
	must_be.Equal(1, len(report.Failures))
	must_be.Equal("On: 5 parameter writes on 2 camera nodes, 1 failed", report.Summary())
}

func TestNonBooleanValueIsReplyError(t *testing.T) {
	must_be, _ := hamlet.Specifications(t)

	gateway := newFakeGateway()
	gateway.add("l", map[string]string{handle: "maybe"})

	_, err := apply(gateway, toggling.NewRequest("lake", toggling.Toggle))
	must_be.Equal(rpc.RemoteReplyError, rpc.KindOf(err))
	must_be.Equal(0, len(gateway.sets))
}

func TestRequestValidation(t *testing.T) {
	must_be, _ := hamlet.Specifications(t)

	gateway := newFakeGateway()
	_, err := apply(gateway, toggling.NewRequest("teapot", toggling.On))
	must_be.True(errors.Is(err, toggling.ErrUnknownClass))

	_, err = apply(gateway, toggling.NewRequest("simple_shape_shader", toggling.On).Without(registry.BoundingBox, "draw_shape_edges_in_preview"))
	must_be.True(errors.Is(err, toggling.ErrNothingToDo))
	must_be.Equal(0, gateway.fetches)
}

func TestEmptyProjectIsNotAnError(t *testing.T) {
	must_be, _ := hamlet.Specifications(t)

	phases := []toggling.Phase{}
	report, err := toggling.Apply(context.Background(), newFakeGateway(), toggling.NewRequest("sphere", toggling.Off), toggling.Options{
		OnPhase: func(phase toggling.Phase) { phases = append(phases, phase) },
	})
	must_be.Nil(err)
	must_be.Equal(0, report.Nodes)
	must_be.Equal("Off: 0 parameter writes on 0 sphere nodes", report.Summary())
	must_be.Equal([]toggling.Phase{toggling.Fetching, toggling.Idle}, phases)
}
