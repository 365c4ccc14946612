package dockerfile

// legacyRuntime still ships an interpreter with a heap ceiling too small for
// typical batch workloads, so its images get a NODE_OPTIONS override.
const legacyRuntime = "nodejs10.x"

const defaultTemplate = `FROM {{ .baseImage }}:{{ .runtime }} AS builder
{{- range .commands }}
RUN {{ . }}
{{- end }}
{{- range .archives }}
COPY {{ . }} /tmp
RUN cd /tmp && unzip -q -o {{ . }} -d {{ trimSuffix ".zip" . }} && rm {{ . }}
{{- end }}

FROM {{ .baseImage }}:{{ .runtime }}
COPY --from=builder /tmp /var/task/{{ .service }}/
RUN rm -rf /tmp
{{- if .legacyHeap }}
ENV NODE_OPTIONS=--max-old-space-size=2048
{{- end }}
`

// Default renders the multi-stage Dockerfile for the default batch image:
// a builder stage that runs the configured extra commands and unpacks every
// batch function archive, and a final stage that copies the unpacked tree
// into /var/task/<service>/.
func (g *Generator) Default() (string, error) {
	var archives []string
	for _, fn := range g.cfg.BatchFunctions() {
		archives = append(archives, fn.ArtifactName())
	}

	return templateString(defaultTemplate, map[string]interface{}{
		"baseImage":  g.cfg.Batch.BaseImage,
		"runtime":    g.cfg.Provider.Runtime,
		"service":    g.cfg.Service,
		"commands":   g.cfg.Batch.ExtraCommands,
		"archives":   archives,
		"legacyHeap": g.cfg.Provider.Runtime == legacyRuntime,
	})
}
