package policy

import "github.com/life2harsh/unixpbl/internal/model"

// criticalNames are process names whose suspension would destabilize the
// host: init/system managers, display servers, window managers, session
// daemons, audio, networking, logging, and container runtimes. Matched by
// substring against the command name.
var criticalNames = []string{
	"systemd", "init", "kernel", "kthread", "ksoftirq", "kworker",
	"Xorg", "X", "wayland", "sway", "gnome-shell", "kwin", "mutter",
	"plasmashell", "xfwm4", "openbox", "i3", "dwm", "awesome",
	"gdm", "sddm", "lightdm", "login", "getty",
	"pulseaudio", "pipewire", "wireplumber", "alsa",
	"NetworkManager", "wpa_supplicant", "dhclient", "dhcpcd",
	"dbus", "dbus-daemon", "systemd-", "udevd", "upowerd", "polkitd",
	"rtkit", "accounts-daemon", "udisksd", "bluetoothd", "cupsd", "avahi",
	"ssh", "sshd", "cron", "crond", "atd",
	"rsyslogd", "syslog", "journald",
	"dockerd", "containerd", "kubelet", "libvirtd", "virtlogd", "qemu",
	"xfce4-session", "mate-session", "cinnamon-session", "lxsession",
	"lxqt-session", "gnome-session", "kde-session",
}

// IsSystemCritical reports whether a command name matches the protected
// list.
func IsSystemCritical(command string) bool {
	return model.MatchesAny(criticalNames, command)
}
