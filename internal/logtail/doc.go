// Package logtail reads the tail of the diagnostics log for display in the
// TUI.
//
// Read uses a ring buffer of maxLines entries, so memory stays bounded by the
// number of lines requested rather than the size of the file. A missing file
// is not an error: Read returns nil, nil, which the diagnostics overlay shows
// as an empty log.
//
// Level pulls the level out of a log/slog text line so the UI can color it.
//
//	lines, err := logtail.Read(cfg.LogFile, 200)
//	if err != nil {
//		return err
//	}
//	for _, line := range lines {
//		fmt.Println(logtail.Level(line), line)
//	}
package logtail
