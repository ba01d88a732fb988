package ui

import (
	"fmt"
	"os/exec"
	"runtime"
	"strings"
)

// AppName is shown as the notification source.
const AppName = "TeleRipper"

// NotificationSender interface for platform-specific notification implementations
type NotificationSender interface {
	Send(title, message string) error
}

// LinuxNotificationSender sends notifications on Linux using notify-send
type LinuxNotificationSender struct{}

func (l *LinuxNotificationSender) Send(title, message string) error {
	return exec.Command("notify-send", "--app-name", AppName, title, message).Run()
}

// MacOSNotificationSender sends notifications on macOS using osascript
type MacOSNotificationSender struct{}

func (m *MacOSNotificationSender) Send(title, message string) error {
	script := fmt.Sprintf(`display notification %q with title %q`, escapeAppleScript(message), escapeAppleScript(title))
	return exec.Command("osascript", "-e", script).Run()
}

// WindowsNotificationSender sends notifications on Windows using PowerShell
type WindowsNotificationSender struct{}

func (w *WindowsNotificationSender) Send(title, message string) error {
	script := fmt.Sprintf(`
		[Windows.UI.Notifications.ToastNotificationManager, Windows.UI.Notifications, ContentType = WindowsRuntime] | Out-Null
		[Windows.Data.Xml.Dom.XmlDocument, Windows.Data.Xml.Dom.XmlDocument, ContentType = WindowsRuntime] | Out-Null
		$xml = @"
<toast>
	<visual>
		<binding template="ToastText02">
			<text id="1">%s</text>
			<text id="2">%s</text>
		</binding>
	</visual>
</toast>
"@
		$doc = [Windows.Data.Xml.Dom.XmlDocument]::new()
		$doc.LoadXml($xml)
		$toast = [Windows.UI.Notifications.ToastNotification]::new($doc)
		[Windows.UI.Notifications.ToastNotificationManager]::CreateToastNotifier(%q).Show($toast)
	`, escapeXML(title), escapeXML(message), AppName)

	return exec.Command("powershell", "-NoProfile", "-NonInteractive", "-Command", script).Run()
}

func escapeAppleScript(s string) string {
	return strings.NewReplacer(`"`, `'`, `\`, `/`).Replace(s)
}

func escapeXML(s string) string {
	return strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;").Replace(s)
}

// Notifier sends desktop notifications when enabled.
type Notifier struct {
	sender  NotificationSender
	enabled bool
}

// NewNotifier creates a Notifier for the current platform
func NewNotifier(enabled bool) *Notifier {
	var sender NotificationSender

	switch runtime.GOOS {
	case "linux":
		sender = &LinuxNotificationSender{}
	case "darwin":
		sender = &MacOSNotificationSender{}
	case "windows":
		sender = &WindowsNotificationSender{}
	}

	return &Notifier{sender: sender, enabled: enabled}
}

// NewNotifierWithSender is used by tests and callers with a custom backend.
func NewNotifierWithSender(sender NotificationSender, enabled bool) *Notifier {
	return &Notifier{sender: sender, enabled: enabled}
}

// Notify sends a desktop notification. Failures are returned, never printed.
func (n *Notifier) Notify(title, message string) error {
	if n == nil || !n.enabled || n.sender == nil {
		return nil
	}
	return n.sender.Send(title, message)
}
