package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/leodido/structcli"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/thediveo/enumflag/v2"
	"github.com/vc4vk/vc4vk"
)

// Build metadata injected via ldflags (see .goreleaser.yaml).
// When built without ldflags (e.g., plain `go build`), these remain
// at their zero values and the version command omits them gracefully.
var (
	version = ""
	commit  = ""
	date    = ""
)

func main() {
	root := &cobra.Command{
		Use:   "vc4vk",
		Short: "VideoCore IV Vulkan driver diagnostics",
		Long: `vc4vk inspects the VideoCore IV GPU behind the VC4 kernel driver.

It probes chip identity and optional hardware capabilities, reports the
driver's device properties, limits, and extension registry, and validates
capability requirements. Use it for operator diagnostics, CI/CD gating, or
verifying a board before deploying Vulkan workloads.`,
		SilenceUsage: true,
	}

	root.AddCommand(probeCmd())
	root.AddCommand(infoCmd())
	root.AddCommand(extensionsCmd())
	root.AddCommand(checkCmd())
	root.AddCommand(versionCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

// ProbeOptions defines flags for the probe subcommand.
type ProbeOptions struct {
	Device string `flag:"device" flagshort:"d" flagdescr:"DRM device node to probe"`
	JSON   bool   `flag:"json" flagshort:"j" flagdescr:"Output in JSON format"`
}

func (o *ProbeOptions) Attach(c *cobra.Command) error {
	return structcli.Define(c, o)
}

func probeCmd() *cobra.Command {
	opts := &ProbeOptions{Device: vc4vk.DefaultDevicePath}

	cmd := &cobra.Command{
		Use:   "probe",
		Short: "Probe the GPU and display its capabilities",
		PreRunE: func(c *cobra.Command, args []string) error {
			return structcli.Unmarshal(c, opts)
		},
		RunE: func(c *cobra.Command, args []string) error {
			snap, err := vc4vk.ProbeWith(vc4vk.WithDevicePath(opts.Device))
			if err != nil {
				return err
			}

			if opts.JSON {
				return printJSON(snap)
			}

			fmt.Print(snap)
			return nil
		},
	}

	if err := opts.Attach(cmd); err != nil {
		panic(err)
	}
	return cmd
}

// InfoOptions defines flags for the info subcommand.
type InfoOptions struct {
	JSON bool `flag:"json" flagshort:"j" flagdescr:"Output in JSON format"`
}

func (o *InfoOptions) Attach(c *cobra.Command) error {
	return structcli.Define(c, o)
}

func infoCmd() *cobra.Command {
	opts := &InfoOptions{}

	cmd := &cobra.Command{
		Use:   "info",
		Short: "Display device properties, features, and extensions",
		PreRunE: func(c *cobra.Command, args []string) error {
			return structcli.Unmarshal(c, opts)
		},
		RunE: func(c *cobra.Command, args []string) error {
			inst, res := vc4vk.CreateInstance(&vc4vk.InstanceCreateInfo{
				ApplicationName: "vc4vk info",
			})
			if res != vc4vk.Success {
				return fmt.Errorf("create instance: %w", res)
			}
			defer inst.Destroy()

			var n uint32
			inst.EnumeratePhysicalDevices(&n, nil)
			devs := make([]*vc4vk.PhysicalDevice, n)
			inst.EnumeratePhysicalDevices(&n, devs)

			props, res := devs[0].Properties()
			if res != vc4vk.Success {
				return fmt.Errorf("query properties: %w", res)
			}
			feats, _ := devs[0].Features()

			var extCount uint32
			devs[0].EnumerateExtensionProperties("", &extCount, nil)
			exts := make([]vc4vk.ExtensionProperties, extCount)
			devs[0].EnumerateExtensionProperties("", &extCount, exts)

			if opts.JSON {
				return printJSON(map[string]any{
					"properties": props,
					"features":   feats,
					"extensions": exts,
				})
			}

			fmt.Printf("Device: %s\n", props.DeviceName)
			fmt.Printf("Type: %s\n", props.DeviceType)
			fmt.Printf("Vendor: %#04x\n", props.VendorID)
			fmt.Printf("API version: %d.%d.%d\n",
				vc4vk.VersionMajor(props.APIVersion),
				vc4vk.VersionMinor(props.APIVersion),
				vc4vk.VersionPatch(props.APIVersion))
			fmt.Printf("Driver version: %d\n", props.DriverVersion)
			fmt.Println()

			var famCount uint32
			devs[0].QueueFamilyProperties(&famCount, nil)
			fams := make([]vc4vk.QueueFamilyProperties, famCount)
			devs[0].QueueFamilyProperties(&famCount, fams)
			fmt.Println("Queue families:")
			for i, fam := range fams {
				fmt.Printf("  %d: %d queue(s), flags %#x, %d timestamp bits\n",
					i, fam.QueueCount, fam.QueueFlags, fam.TimestampValidBits)
			}
			fmt.Println()

			fmt.Printf("Max image dimension (2D): %d\n", props.Limits.MaxImageDimension2D)
			fmt.Printf("Max framebuffer: %dx%d\n",
				props.Limits.MaxFramebufferWidth, props.Limits.MaxFramebufferHeight)
			fmt.Printf("Max viewports: %d\n", props.Limits.MaxViewports)
			fmt.Println()
			fmt.Println("Device extensions:")
			for _, ext := range exts {
				fmt.Printf("  %s (rev %d)\n", ext.Name, ext.SpecVersion)
			}
			return nil
		},
	}

	if err := opts.Attach(cmd); err != nil {
		panic(err)
	}
	return cmd
}

// ExtensionsOptions defines flags for the extensions subcommand.
type ExtensionsOptions struct {
	JSON bool `flag:"json" flagshort:"j" flagdescr:"Output in JSON format"`
}

func (o *ExtensionsOptions) Attach(c *cobra.Command) error {
	return structcli.Define(c, o)
}

func extensionsCmd() *cobra.Command {
	opts := &ExtensionsOptions{}

	cmd := &cobra.Command{
		Use:   "extensions",
		Short: "List the instance and device extension registries",
		PreRunE: func(c *cobra.Command, args []string) error {
			return structcli.Unmarshal(c, opts)
		},
		RunE: func(c *cobra.Command, args []string) error {
			var n uint32
			vc4vk.EnumerateInstanceExtensionProperties("", &n, nil)
			instExts := make([]vc4vk.ExtensionProperties, n)
			vc4vk.EnumerateInstanceExtensionProperties("", &n, instExts)

			inst, res := vc4vk.CreateInstance(&vc4vk.InstanceCreateInfo{})
			if res != vc4vk.Success {
				return fmt.Errorf("create instance: %w", res)
			}
			defer inst.Destroy()

			inst.EnumeratePhysicalDevices(&n, nil)
			devs := make([]*vc4vk.PhysicalDevice, n)
			inst.EnumeratePhysicalDevices(&n, devs)

			devs[0].EnumerateExtensionProperties("", &n, nil)
			devExts := make([]vc4vk.ExtensionProperties, n)
			devs[0].EnumerateExtensionProperties("", &n, devExts)

			if opts.JSON {
				return printJSON(map[string]any{
					"instance": instExts,
					"device":   devExts,
				})
			}

			fmt.Println("Instance extensions:")
			for _, ext := range instExts {
				fmt.Printf("  %s (rev %d)\n", ext.Name, ext.SpecVersion)
			}
			fmt.Println()
			fmt.Println("Device extensions:")
			for _, ext := range devExts {
				fmt.Printf("  %s (rev %d)\n", ext.Name, ext.SpecVersion)
			}
			return nil
		},
	}

	if err := opts.Attach(cmd); err != nil {
		panic(err)
	}
	return cmd
}

// CheckOptions defines flags for the check subcommand.
type CheckOptions struct {
	Require capabilityRequirements `flag:"require" flagshort:"r" flagdescr:"Required capabilities (see available capabilities above)" flagrequired:"true" flagcustom:"true"`
	JSON    bool                   `flag:"json" flagshort:"j" flagdescr:"Output in JSON format"`
}

func (o *CheckOptions) Attach(c *cobra.Command) error {
	return structcli.Define(c, o)
}

func (o *CheckOptions) DefineRequire(name, short, descr string, structField reflect.StructField, fieldValue reflect.Value) (pflag.Value, string) {
	fieldPtr := fieldValue.Addr().Interface().(*capabilityRequirements)
	*fieldPtr = nil
	return fieldPtr, descr
}

func (o *CheckOptions) DecodeRequire(input any) (any, error) {
	s, ok := input.(string)
	if !ok {
		return input, nil
	}

	return parseCapabilityRequirements(s)
}

func (o *CheckOptions) CompleteRequire(c *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	directive := cobra.ShellCompDirectiveNoFileComp | cobra.ShellCompDirectiveNoSpace

	prefix := ""
	current := toComplete
	if idx := strings.LastIndex(toComplete, ","); idx >= 0 {
		prefix = toComplete[:idx+1]
		current = toComplete[idx+1:]
	}

	selected := make(map[string]bool)
	for _, part := range strings.Split(prefix, ",") {
		if name := strings.TrimSpace(part); name != "" {
			selected[strings.ToLower(name)] = true
		}
	}

	candidates := make([]string, 0, len(vc4vk.FeatureNames()))
	for _, name := range vc4vk.FeatureNames() {
		if selected[name] {
			continue
		}
		if !strings.HasPrefix(name, strings.ToLower(current)) {
			continue
		}
		candidates = append(candidates, prefix+name)
	}
	return candidates, directive
}

func checkCmd() *cobra.Command {
	opts := &CheckOptions{}

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check specific hardware capability requirements",
		Long:  checkLongDescription(),
		PreRunE: func(c *cobra.Command, args []string) error {
			return structcli.Unmarshal(c, opts)
		},
		RunE: func(c *cobra.Command, args []string) error {
			if len(opts.Require) == 0 {
				return fmt.Errorf("no capabilities specified")
			}

			err := vc4vk.Check(opts.Require...)
			if err != nil {
				var ce *vc4vk.CapabilityError
				if errors.As(err, &ce) {
					if opts.JSON {
						return printJSON(map[string]any{
							"ok":         false,
							"capability": ce.Feature,
							"reason":     ce.Reason,
						})
					}
					fmt.Fprintf(os.Stderr, "FAIL: %s: %s\n", ce.Feature, ce.Reason)
					os.Exit(1)
				}
				return err
			}

			if opts.JSON {
				return printJSON(map[string]any{"ok": true})
			}
			fmt.Println("OK: all requirements satisfied")
			return nil
		},
	}

	if err := opts.Attach(cmd); err != nil {
		panic(err)
	}
	return cmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show tool and chip version",
		RunE: func(c *cobra.Command, args []string) error {
			if version != "" {
				fmt.Printf("vc4vk %s", version)
				if commit != "" {
					fmt.Printf(" (%s)", commit)
				}
				if date != "" {
					fmt.Printf(" built %s", date)
				}
				fmt.Println()
			} else {
				fmt.Println("vc4vk (dev)")
			}

			snap, err := vc4vk.ProbeWith()
			if err != nil {
				return err
			}
			fmt.Printf("Chip: VC4 V3D %d.%d\n", snap.ChipVersion/10, snap.ChipVersion%10)
			return nil
		},
	}
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func availableCapabilities() string {
	return strings.Join(vc4vk.FeatureNames(), ", ")
}

func checkLongDescription() string {
	return fmt.Sprintf(`Check that the hardware supports all required capabilities.
Exits with code 0 if all requirements are met, 1 if any are missing.

Available capabilities:
%s`, formatWrappedList(vc4vk.FeatureNames(), "  ", 80))
}

func formatWrappedList(items []string, indent string, maxWidth int) string {
	if len(items) == 0 {
		return indent + "(none)"
	}

	lines := make([]string, 0, len(items))
	line := indent
	for i, item := range items {
		token := item
		if i < len(items)-1 {
			token += ", "
		}

		if len(line)+len(token) > maxWidth && line != indent {
			lines = append(lines, strings.TrimRight(line, " "))
			line = indent + token
			continue
		}

		line += token
	}

	lines = append(lines, strings.TrimRight(line, " "))
	return strings.Join(lines, "\n")
}

type capabilityRequirements []vc4vk.HardwareFeature

var capabilityIdentifierMap = func() map[vc4vk.HardwareFeature][]string {
	ids := make(map[vc4vk.HardwareFeature][]string, len(vc4vk.FeatureValues()))
	for _, f := range vc4vk.FeatureValues() {
		ids[f] = []string{f.String()}
	}
	return ids
}()

func (r *capabilityRequirements) String() string {
	names := make([]string, 0, len(*r))
	for _, f := range *r {
		names = append(names, f.String())
	}

	return strings.Join(names, ",")
}

func (r *capabilityRequirements) Set(input string) error {
	features, err := parseCapabilityRequirements(input)
	if err != nil {
		return err
	}

	*r = append(*r, features...)
	return nil
}

func (r *capabilityRequirements) Type() string {
	return "capability"
}

func parseCapabilityRequirements(input string) (capabilityRequirements, error) {
	if strings.TrimSpace(input) == "" {
		return capabilityRequirements{}, nil
	}

	parts := strings.Split(input, ",")
	features := make(capabilityRequirements, 0, len(parts))
	for _, part := range parts {
		name := strings.TrimSpace(part)
		if name == "" {
			continue
		}

		var feature vc4vk.HardwareFeature
		enumValue := enumflag.New(&feature, "vc4vk.HardwareFeature", capabilityIdentifierMap, enumflag.EnumCaseInsensitive)
		if err := enumValue.Set(name); err != nil {
			return nil, fmt.Errorf("unknown capability: %q (available: %s)", name, availableCapabilities())
		}

		features = append(features, feature)
	}

	return features, nil
}
