// Package registry knows which preview display parameters belong to which
// node class of the host application. The table is static and ordered.
package registry

const (
	// MainHidden hides the whole node from the preview. Writing it also
	// resets the preview mode flags in HiddenResetSet.
	MainHidden = `preview_options_main_hidden`

	Textured = `preview_options_main_textured`

	BoundingBox = `show_b-box_in_preview`
)

// HiddenResetSet lists the mutually exclusive preview mode flags that
// travel with MainHidden. Order is the write order; Textured stays last.
var HiddenResetSet = []string{
	`preview_options_main_bounding_box`,
	`preview_options_main_wireframe`,
	`preview_options_wf_bounding_box`,
	`preview_options_main_smooth_shaded`,
	Textured,
}

// Group is the node family a class belongs to in the host's node graph.
// The shell frames and colours classes by group.
type Group int

const (
	Objects Group = iota
	Shaders
	Cameras
)

func (it Group) String() string {
	switch it {
	case Objects:
		return "OBJECTS"
	case Shaders:
		return "SHADERS"
	case Cameras:
		return "CAMERAS"
	}
	return "OTHER"
}

type Parameter struct {
	Name  string
	Label string
}

type Class struct {
	Name       string
	Label      string
	Group      Group
	Parameters []Parameter
}

var (
	hidden = []Parameter{{Name: MainHidden, Label: "Visible"}}
	bbox   = []Parameter{{Name: BoundingBox, Label: "B-box"}}

	classes = []Class{
		{Name: `bounding_box`, Label: "Bounding box", Group: Objects, Parameters: hidden},
		{Name: `card`, Label: "Card", Group: Objects, Parameters: hidden},
		{Name: `cube`, Label: "Cube", Group: Objects, Parameters: bbox},
		{Name: `disc`, Label: "Disc", Group: Objects, Parameters: bbox},
		{Name: `grass_clump`, Label: "Grass clump", Group: Objects, Parameters: hidden},
		{
			Name:       `lake`,
			Label:      "Lake",
			Group:      Objects,
			Parameters: []Parameter{{Name: `handle_in_preview`, Label: "Handle"}},
		},
		{Name: `lwo_reader`, Label: "LWO reader", Group: Objects, Parameters: hidden},
		{Name: `obj_reader`, Label: "OBJ reader", Group: Objects, Parameters: hidden},
		{Name: `octahedron`, Label: "Octahedron", Group: Objects, Parameters: bbox},
		{Name: `planet`, Label: "Planet", Group: Objects, Parameters: bbox},
		{Name: `poly_sphere`, Label: "Poly sphere", Group: Objects, Parameters: hidden},
		{Name: `populator_v4`, Label: "Populator", Group: Objects, Parameters: bbox},
		{Name: `rock`, Label: "Rock", Group: Objects, Parameters: hidden},
		{Name: `sphere`, Label: "Sphere", Group: Objects, Parameters: bbox},
		{Name: `tgo_reader`, Label: "TGO reader", Group: Objects, Parameters: hidden},
		{Name: `heightfield_shader`, Label: "Heightfield", Group: Shaders, Parameters: bbox},
		{
			Name:  `simple_shape_shader`,
			Label: "Simple Shape",
			Group: Shaders,
			Parameters: []Parameter{
				{Name: BoundingBox, Label: "B-box"},
				{Name: `draw_shape_edges_in_preview`, Label: "Profile edge"},
			},
		},
		{
			Name:  `camera`,
			Label: "Camera",
			Group: Cameras,
			Parameters: []Parameter{
				{Name: `show_camera_body_in_preview`, Label: "Body"},
				{Name: `show_frustum_in_preview`, Label: "Frustum"},
				{Name: `show_path_in_preview`, Label: "Path"},
			},
		},
	}
)

// MultiParameter classes get one checkbox per parameter in the shell.
func (it Class) MultiParameter() bool {
	return len(it.Parameters) > 1
}

func (it Class) ParameterNames() []string {
	result := make([]string, 0, len(it.Parameters))
	for _, parameter := range it.Parameters {
		result = append(result, parameter.Name)
	}
	return result
}

// Groups returns the groups in the order their classes are declared.
func Groups() []Group {
	result := []Group{}
	seen := make(map[Group]bool)
	for _, class := range classes {
		if !seen[class.Group] {
			seen[class.Group] = true
			result = append(result, class.Group)
		}
	}
	return result
}

// Classes returns a copy of the class table in declaration order.
func Classes() []Class {
	result := make([]Class, 0, len(classes))
	for _, class := range classes {
		class.Parameters = append([]Parameter(nil), class.Parameters...)
		result = append(result, class)
	}
	return result
}

func Names() []string {
	result := make([]string, 0, len(classes))
	for _, class := range classes {
		result = append(result, class.Name)
	}
	return result
}

func Lookup(name string) (Class, bool) {
	for _, class := range classes {
		if class.Name == name {
			class.Parameters = append([]Parameter(nil), class.Parameters...)
			return class, true
		}
	}
	return Class{}, false
}

func ParametersFor(name string) []string {
	class, ok := Lookup(name)
	if !ok {
		return nil
	}
	return class.ParameterNames()
}

func LabelFor(name string) string {
	class, ok := Lookup(name)
	if !ok {
		return name
	}
	return class.Label
}
