package simctl

import (
	"context"
	"testing"

	"github.com/artmamedov/ios-sim-mcp/internal/model"
	"github.com/artmamedov/ios-sim-mcp/internal/runner/runnertest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const listJSON = `{
  "devices" : {
    "com.apple.CoreSimulator.SimRuntime.iOS-17-2" : [
      {
        "lastBootedAt" : "2024-01-10T09:00:00Z",
        "dataPath" : "/Users/dev/Library/Developer/CoreSimulator/Devices/AAA/data",
        "udid" : "AAA",
        "isAvailable" : true,
        "deviceTypeIdentifier" : "com.apple.CoreSimulator.SimDeviceType.iPhone-15-Pro",
        "state" : "Booted",
        "name" : "iPhone 15 Pro"
      },
      {
        "udid" : "BBB",
        "isAvailable" : false,
        "state" : "Shutdown",
        "name" : "Broken Device"
      }
    ],
    "com.apple.CoreSimulator.SimRuntime.iOS-16-4" : [
      {
        "udid" : "CCC",
        "isAvailable" : true,
        "state" : "Shutdown",
        "name" : "iPhone SE (3rd generation)"
      }
    ]
  }
}`

func TestParseDeviceList(t *testing.T) {
	devices, err := parseDeviceList([]byte(listJSON))
	require.NoError(t, err)
	require.Len(t, devices, 2, "unavailable devices are skipped")

	assert.Equal(t, model.Device{UDID: "CCC", Name: "iPhone SE (3rd generation)", State: model.StateShutdown, Type: "simulator", OSVersion: "iOS 16.4"}, devices[0])
	assert.Equal(t, model.Device{UDID: "AAA", Name: "iPhone 15 Pro", State: model.StateBooted, Type: "simulator", OSVersion: "iOS 17.2"}, devices[1])
}

func TestParseDeviceList_Invalid(t *testing.T) {
	_, err := parseDeviceList([]byte("not json"))
	assert.Error(t, err)
}

func TestRuntimeVersion(t *testing.T) {
	assert.Equal(t, "iOS 17.2", runtimeVersion("com.apple.CoreSimulator.SimRuntime.iOS-17-2"))
	assert.Equal(t, "watchOS 10.0", runtimeVersion("com.apple.CoreSimulator.SimRuntime.watchOS-10-0"))
	assert.Equal(t, "custom", runtimeVersion("custom"))
}

const listAppsOutput = `{
    "com.apple.Preferences" =     {
        ApplicationType = System;
        CFBundleDisplayName = Settings;
        CFBundleIdentifier = "com.apple.Preferences";
        CFBundleName = Preferences;
    };
    "com.example.demo" =     {
        ApplicationType = User;
        CFBundleIdentifier = "com.example.demo";
        CFBundleName = Demo;
    };
}`

func TestParseAppList(t *testing.T) {
	apps, err := parseAppList([]byte(listAppsOutput))
	require.NoError(t, err)
	require.Len(t, apps, 2)
	assert.Equal(t, model.App{BundleID: "com.apple.Preferences", Name: "Settings", InstallType: "system"}, apps[0])
	assert.Equal(t, model.App{BundleID: "com.example.demo", Name: "Demo", InstallType: "user"}, apps[1])
	assert.Nil(t, apps[0].Running)
}

func TestClient_Commands(t *testing.T) {
	fake := (&runnertest.Fake{}).OnOutput("xcrun simctl", "")
	c := New(fake)
	ctx := context.Background()

	require.NoError(t, c.Boot(ctx, "AAA"))
	require.NoError(t, c.Screenshot(ctx, "AAA", "/tmp/a.png"))
	require.NoError(t, c.LaunchApp(ctx, "AAA", "com.apple.Preferences"))
	require.NoError(t, c.OpenURL(ctx, "AAA", "maps://?q=coffee"))

	var argv []string
	for _, call := range fake.Calls {
		argv = append(argv, call.Argv())
	}
	assert.Equal(t, []string{
		"xcrun simctl boot AAA",
		"xcrun simctl io AAA screenshot --type=png /tmp/a.png",
		"xcrun simctl launch AAA com.apple.Preferences",
		"xcrun simctl openurl AAA maps://?q=coffee",
	}, argv)
}

func TestClient_ListApps(t *testing.T) {
	fake := (&runnertest.Fake{}).OnOutput("xcrun simctl listapps AAA", listAppsOutput)
	apps, err := New(fake).ListApps(context.Background(), "AAA")
	require.NoError(t, err)
	assert.Len(t, apps, 2)
}
