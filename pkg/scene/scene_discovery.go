package scene

import (
	"context"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pkg/errors"

	"github.com/df07/go-path-tracer/pkg/core"
	"github.com/df07/go-path-tracer/pkg/loaders"
)

// ErrUnknownScene is returned by Create for names that are not registered
var ErrUnknownScene = errors.New("unknown scene")

// Scene types
const (
	TypeBuiltin = "builtin"
	TypeFile    = "file"
)

const builtinGroup = "Built-in Scenes"

// SceneInfo represents a discovered scene with its metadata
type SceneInfo struct {
	ID          string `json:"id"`                 // Name passed to Create, or "file:<name>"
	DisplayName string `json:"displayName"`        // UI display name
	Description string `json:"description"`        // Optional description
	Group       string `json:"group"`              // Grouping category
	Type        string `json:"type"`               // "builtin" or "file"
	FilePath    string `json:"filePath,omitempty"` // Path to the JSON scene (file type only)
}

// SceneGroup represents a group of related scenes
type SceneGroup struct {
	Name   string      `json:"name"`
	Scenes []SceneInfo `json:"scenes"`
}

// ScenesResponse represents the complete response for /api/scenes
type ScenesResponse struct {
	Groups []SceneGroup `json:"groups"`
}

// Options tune how a built-in scene is generated
type Options struct {
	Seed        int64       // Drives random placement and noise tables
	TexturePath string      // Image used by the earth scene
	UseBVH      *bool       // Overrides the scene's own choice when set
	Logger      core.Logger // Optional
}

type demo struct {
	info   SceneInfo
	useBVH bool
	build  func(opts Options) *Builder
}

// demos is the built-in registry, in display order
var demos = []demo{
	{
		info:   SceneInfo{ID: "bouncing-spheres", Description: "Random grid of moving diffuse, metal and glass spheres on a checkered ground"},
		useBVH: true,
		build:  newBouncingSpheres,
	},
	{
		info:  SceneInfo{ID: "checkered-spheres", Description: "Two huge checkered spheres touching at the origin"},
		build: newCheckeredSpheres,
	},
	{
		info:  SceneInfo{ID: "earth", Description: "Image-textured globe"},
		build: newEarth,
	},
	{
		info:  SceneInfo{ID: "perlin-spheres", Description: "Marble sphere on a noise-textured ground"},
		build: newPerlinSpheres,
	},
	{
		info:  SceneInfo{ID: "quick", Description: "Three small spheres on a ground sphere, fast to render"},
		build: newQuick,
	},
}

// Names lists the built-in scene names in registry order
func Names() []string {
	names := make([]string, len(demos))
	for i, d := range demos {
		names[i] = d.info.ID
	}
	return names
}

// Create builds the named built-in scene
func Create(name string, opts Options) (*Scene, error) {
	return CreateContext(context.Background(), name, opts)
}

// CreateContext is Create with a parent context for tracing
func CreateContext(ctx context.Context, name string, opts Options) (*Scene, error) {
	for _, d := range demos {
		if d.info.ID != name {
			continue
		}
		useBVH := d.useBVH
		if opts.UseBVH != nil {
			useBVH = *opts.UseBVH
		}
		return d.build(opts).WithName(name).BuildContext(ctx, BuildOptions{UseBVH: useBVH, Logger: opts.Logger})
	}
	return nil, errors.Wrapf(ErrUnknownScene, "%q (available: %s)", name, strings.Join(Names(), ", "))
}

// ListBuiltinScenes describes the registered demo scenes
func ListBuiltinScenes() []SceneInfo {
	scenes := make([]SceneInfo, len(demos))
	for i, d := range demos {
		info := d.info
		info.DisplayName = titleCase(info.ID)
		info.Group = builtinGroup
		info.Type = TypeBuiltin
		scenes[i] = info
	}
	return scenes
}

// ListSceneFiles scans dir for JSON scene files. A missing directory yields an empty list.
func ListSceneFiles(dir string, logger core.Logger) ([]SceneInfo, error) {
	files, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, errors.Wrap(err, "failed to scan scenes directory")
	}

	scenes := []SceneInfo{}
	for _, path := range files {
		info, err := sceneFileInfo(path)
		if err != nil {
			// Skip broken files but keep listing the rest
			if logger != nil {
				logger.Printf("Warning: skipping scene file %s: %v\n", path, err)
			}
			continue
		}
		scenes = append(scenes, info)
	}

	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].DisplayName < scenes[j].DisplayName
	})
	return scenes, nil
}

func sceneFileInfo(path string) (SceneInfo, error) {
	sf, err := loaders.LoadSceneFile(path)
	if err != nil {
		return SceneInfo{}, err
	}

	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	info := SceneInfo{
		ID:          "file:" + base,
		DisplayName: titleCase(base),
		Description: sf.Name,
		Group:       "Scene Files",
		Type:        TypeFile,
		FilePath:    path,
	}
	if sf.Name != "" {
		info.DisplayName = sf.Name
		info.Description = ""
	}
	return info, nil
}

// ListAllScenes returns the built-in scenes followed by any scene files in dir, grouped by category
func ListAllScenes(dir string, logger core.Logger) (ScenesResponse, error) {
	var response ScenesResponse

	fileScenes, err := ListSceneFiles(dir, logger)
	if err != nil {
		return response, errors.Wrap(err, "failed to list scene files")
	}
	allScenes := append(ListBuiltinScenes(), fileScenes...)

	groupMap := make(map[string][]SceneInfo)
	for _, s := range allScenes {
		groupMap[s.Group] = append(groupMap[s.Group], s)
	}

	// Built-in first, then alphabetical
	var groupNames []string
	for groupName := range groupMap {
		if groupName != builtinGroup {
			groupNames = append(groupNames, groupName)
		}
	}
	sort.Strings(groupNames)

	response.Groups = append(response.Groups, SceneGroup{Name: builtinGroup, Scenes: groupMap[builtinGroup]})
	for _, groupName := range groupNames {
		response.Groups = append(response.Groups, SceneGroup{Name: groupName, Scenes: groupMap[groupName]})
	}
	return response, nil
}

// titleCase converts a filename-style string to title case
// e.g., "bouncing-spheres" -> "Bouncing Spheres"
func titleCase(s string) string {
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")

	words := strings.Fields(s)
	for i, word := range words {
		words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
	}
	return strings.Join(words, " ")
}
