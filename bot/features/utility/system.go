package utility

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"guildbot/bot/common"

	"github.com/bwmarrin/discordgo"
	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/disk"
	"github.com/shirou/gopsutil/v4/mem"
)

const cpuSampleInterval = time.Second

// SystemInfo is a snapshot of the host the bot runs on
type SystemInfo struct {
	CPUPercent float64
	CPUCores   int
	MemTotal   uint64
	MemUsed    uint64
	MemFree    uint64
	DiskTotal  uint64
	DiskUsed   uint64
	DiskFree   uint64
	GoVersion  string
	Goroutines int
}

// CollectSystemInfo samples CPU over one second and reads memory and root disk usage
func CollectSystemInfo() (*SystemInfo, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	percents, err := cpu.PercentWithContext(ctx, cpuSampleInterval, false)
	if err != nil {
		return nil, err
	}
	cores, err := cpu.CountsWithContext(ctx, true)
	if err != nil {
		return nil, err
	}
	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return nil, err
	}
	usage, err := disk.UsageWithContext(ctx, "/")
	if err != nil {
		return nil, err
	}

	info := &SystemInfo{
		CPUCores:   cores,
		MemTotal:   vm.Total,
		MemUsed:    vm.Used,
		MemFree:    vm.Free,
		DiskTotal:  usage.Total,
		DiskUsed:   usage.Used,
		DiskFree:   usage.Free,
		GoVersion:  runtime.Version(),
		Goroutines: runtime.NumGoroutine(),
	}
	if len(percents) > 0 {
		info.CPUPercent = percents[0]
	}
	return info, nil
}

func gigabytes(b uint64) float64 {
	return float64(b) / 1024 / 1024 / 1024
}

func buildSystemEmbed(info *SystemInfo) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title: "System Information",
		Color: common.ColorInfo,
		Fields: []*discordgo.MessageEmbedField{
			{
				Name:   "CPU",
				Value:  fmt.Sprintf("Usage: %.1f%%\nCores: %d", info.CPUPercent, info.CPUCores),
				Inline: true,
			},
			{
				Name:   "Memory",
				Value:  fmt.Sprintf("Total: %.2fGB\nUsed: %.2fGB\nFree: %.2fGB", gigabytes(info.MemTotal), gigabytes(info.MemUsed), gigabytes(info.MemFree)),
				Inline: true,
			},
			{
				Name:   "Disk",
				Value:  fmt.Sprintf("Total: %.2fGB\nUsed: %.2fGB\nFree: %.2fGB", gigabytes(info.DiskTotal), gigabytes(info.DiskUsed), gigabytes(info.DiskFree)),
				Inline: true,
			},
			{
				Name:   "Bot",
				Value:  fmt.Sprintf("Go: %s\ndiscordgo: %s\nGoroutines: %d", info.GoVersion, discordgo.VERSION, info.Goroutines),
				Inline: true,
			},
		},
	}
}
