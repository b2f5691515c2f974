// Disk usage collector: aggregate used space across local filesystems.
// Uses gopsutil for cross-platform disk metrics.
package collector

import (
	"context"
	"strings"

	"github.com/shirou/gopsutil/v3/disk"
	"go.uber.org/zap"

	"github.com/Guliveer/vitalis-live/internal/models"
)

// pseudoFSTypes contains filesystem types that should be excluded from disk metrics.
// These are virtual/system filesystems and network/remote filesystems that don't
// represent local storage devices.
var pseudoFSTypes = map[string]bool{
	// Virtual / system filesystems
	"devfs":         true,
	"autofs":        true,
	"nullfs":        true,
	"tmpfs":         true,
	"sysfs":         true,
	"proc":          true,
	"procfs":        true,
	"devtmpfs":      true,
	"cgroup":        true,
	"cgroup2":       true,
	"overlay":       true,
	"squashfs":      true,
	"fuse.snapfuse": true,
	"nsfs":          true,
	"pstore":        true,
	"debugfs":       true,
	"tracefs":       true,
	"securityfs":    true,
	"configfs":      true,
	"fusectl":       true,
	"mqueue":        true,
	"hugetlbfs":     true,
	"binfmt_misc":   true,
	"efivarfs":      true,
	"bpf":           true,
	"ramfs":         true,

	// Network / remote filesystems
	"nfs":            true,
	"nfs4":           true,
	"cifs":           true,
	"smbfs":          true,
	"fuse.sshfs":     true,
	"fuse.rclone":    true,
	"9p":             true,
	"afs":            true,
	"ncpfs":          true,
	"glusterfs":      true,
	"lustre":         true,
	"ceph":           true,
	"fuse.ceph":      true,
	"gpfs":           true,
	"pvfs2":          true,
	"fuse.s3fs":      true,
	"fuse.gcsfuse":   true,
	"fuse.blobfuse":  true,
	"davfs2":         true,
}

// isSystemMount returns true for mount points that are macOS system volumes
// or other OS-internal paths that shouldn't be shown to users.
func isSystemMount(mount string) bool {
	systemPrefixes := []string{
		"/System/Volumes/",
		"/private/var/vm",
	}
	for _, prefix := range systemPrefixes {
		if strings.HasPrefix(mount, prefix) {
			return true
		}
	}
	return false
}

// DiskReading holds the share of local storage in use, in percent.
type DiskReading struct {
	UsedPercent float64
}

// Apply implements Reading.
func (r DiskReading) Apply(m *models.SystemMetric) { m.DiskUsagePercent = r.UsedPercent }

// DiskCollector sums capacity over every local partition.
type DiskCollector struct {
	logger *zap.Logger
}

// NewDiskCollector creates a new disk collector.
func NewDiskCollector(logger *zap.Logger) *DiskCollector {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DiskCollector{logger: logger}
}

// Name returns the collector identifier.
func (c *DiskCollector) Name() string { return "disk" }

// Collect computes (total - free) / total over all local partitions.
// Inaccessible partitions are silently skipped.
func (c *DiskCollector) Collect(ctx context.Context) (Reading, error) {
	partitions, err := disk.PartitionsWithContext(ctx, false)
	if err != nil {
		return nil, err
	}

	var usages []*disk.UsageStat
	for _, p := range partitions {
		if pseudoFSTypes[p.Fstype] {
			c.logger.Debug("Skipping pseudo/network filesystem",
				zap.String("mount", p.Mountpoint),
				zap.String("fstype", p.Fstype))
			continue
		}
		if isSystemMount(p.Mountpoint) {
			continue
		}

		usage, err := disk.UsageWithContext(ctx, p.Mountpoint)
		if err != nil {
			continue
		}
		usages = append(usages, usage)
	}

	return DiskReading{UsedPercent: aggregateUsage(usages)}, nil
}

// aggregateUsage returns the used percentage of the combined capacity.
// Partitions reporting zero size do not contribute.
func aggregateUsage(usages []*disk.UsageStat) float64 {
	var total, free uint64
	for _, u := range usages {
		if u == nil || u.Total == 0 {
			continue
		}
		total += u.Total
		free += u.Free
	}
	if total == 0 {
		return 0
	}
	return float64(total-free) / float64(total) * 100
}

// IsAvailable returns true: disk metrics are available on all platforms.
func (c *DiskCollector) IsAvailable() bool { return true }
