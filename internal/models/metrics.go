// Package models defines the wire types shared by the agent and the dashboard.
// These structures mirror the JSON the monitoring backend ingests on
// POST /ingest and re-broadcasts on its /events stream.
package models

import "time"

// SystemMetric is a single point-in-time sample of one host.
type SystemMetric struct {
	HostID           string  `json:"host_id"`
	CPUUsage         float64 `json:"cpu_usage"`
	RAMUsageMB       float64 `json:"ram_usage_mb"`
	DiskUsagePercent float64 `json:"disk_usage_percent"`
	NetRxKB          float64 `json:"net_rx_kb"`
	NetTxKB          float64 `json:"net_tx_kb"`
	GPUUsage         float64 `json:"gpu_usage"`
	GPUTemp          float64 `json:"gpu_temp"`
	GPUVRAMUsedMB    float64 `json:"gpu_vram_used_mb"`
	Timestamp        int64   `json:"timestamp"`
}

// Time returns the sample timestamp as a time.Time in UTC.
func (m SystemMetric) Time() time.Time {
	return time.Unix(m.Timestamp, 0).UTC()
}

// ChatRequest is the payload sent to the backend via POST /chat.
type ChatRequest struct {
	Question string `json:"question"`
}
