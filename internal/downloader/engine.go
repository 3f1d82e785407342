package downloader

import (
	"fmt"
	"io"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"tubegrab/internal/config"
	"tubegrab/internal/models"

	"github.com/kkdai/youtube/v2"
)

// Engine wraps the extraction/download collaborator. Everything past
// this boundary (stream resolution, signatures, throttling) is the
// library's problem.
type Engine struct {
	cfg    *config.Config
	client youtube.Client
}

func NewEngine(cfg *config.Config) *Engine {
	return &Engine{cfg: cfg}
}

// Info extracts metadata and the selectable formats for url. Playlist
// URLs resolve to their first entry.
func (e *Engine) Info(url string) (*models.VideoInfo, error) {
	video, err := e.resolve(url)
	if err != nil {
		return nil, fmt.Errorf("%s", wrapError(err))
	}

	return &models.VideoInfo{
		Title:     video.Title,
		Thumbnail: bestThumbnail(video),
		Duration:  int(video.Duration.Seconds()),
		Formats:   formatOptions(video.Formats),
	}, nil
}

// Run executes one download job end to end and reports every state
// transition through hook. It never returns anything to the caller:
// failures surface as a failed status on the stream.
func (e *Engine) Run(url, formatID string, hook func(models.Status)) {
	if err := e.download(url, formatID, hook); err != nil {
		log.Printf("❌ Download failed: %v", err)
		hook(models.Status{State: models.StateFailed, Error: wrapError(err)})
	}
}

func (e *Engine) download(url, formatID string, hook func(models.Status)) error {
	video, err := e.resolve(url)
	if err != nil {
		return err
	}

	videoFormat := pickVideoFormat(video.Formats, formatID)
	audioFormat := findBestAudioFormat(video.Formats)
	if videoFormat == nil || audioFormat == nil {
		return fmt.Errorf("format not found")
	}

	filename := sanitizeFilename(video.Title) + ".mp4"
	outPath := filepath.Join(e.cfg.DownloadDir, filename)

	stamp := time.Now().UnixNano()
	videoTemp := filepath.Join(e.cfg.TempDir, fmt.Sprintf("v_%d.mp4", stamp))
	audioTemp := filepath.Join(e.cfg.TempDir, fmt.Sprintf("a_%d.m4a", stamp))

	track := newTracker(videoFormat.ContentLength+audioFormat.ContentLength, filename, hook)

	var wg sync.WaitGroup
	wg.Add(2)
	var errV, errA error

	go func() {
		defer wg.Done()
		errV = e.downloadStream(video, videoFormat, videoTemp, track.add)
	}()
	go func() {
		defer wg.Done()
		errA = e.downloadStream(video, audioFormat, audioTemp, track.add)
	}()
	wg.Wait()

	if errV != nil {
		return errV
	}
	if errA != nil {
		return errA
	}

	// Muxing
	cmd := exec.Command("ffmpeg", "-y", "-hide_banner", "-loglevel", "error",
		"-i", videoTemp, "-i", audioTemp, "-c", "copy", outPath)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("ffmpeg: %s", string(out))
	}

	os.Remove(videoTemp)
	os.Remove(audioTemp)

	// 0 Byte kontrolü
	if info, err := os.Stat(outPath); err != nil || info.Size() == 0 {
		return fmt.Errorf("generated file is empty")
	}

	hook(models.Status{State: models.StateFinished, Filename: filename})
	return nil
}

// resolve: playlist linkleri ilk videoya düşer
func (e *Engine) resolve(url string) (*youtube.Video, error) {
	video, err := e.client.GetVideo(url)
	if err == nil {
		return video, nil
	}

	playlist, plErr := e.client.GetPlaylist(url)
	if plErr != nil || len(playlist.Videos) == 0 {
		return nil, err
	}
	return e.client.VideoFromPlaylistEntry(playlist.Videos[0])
}

func (e *Engine) downloadStream(v *youtube.Video, f *youtube.Format, path string, cb func(int)) error {
	stream, _, err := e.client.GetStream(v, f)
	if err != nil {
		return err
	}
	defer stream.Close()

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	buf := make([]byte, 32*1024)
	for {
		n, err := stream.Read(buf)
		if n > 0 {
			file.Write(buf[:n])
			cb(n)
		}
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return err
		}
	}
}

// --- Helpers (Private) ---

// formatOptions filters to video-capable formats and orders them by
// descending filesize, best first.
func formatOptions(formats youtube.FormatList) []models.FormatOption {
	options := make([]models.FormatOption, 0, len(formats))
	for _, f := range formats {
		if !strings.Contains(f.MimeType, "video") {
			continue
		}
		options = append(options, models.FormatOption{
			FormatID:   strconv.Itoa(f.ItagNo),
			Resolution: resolutionLabel(f),
			Ext:        extFromMimeType(f.MimeType),
			Filesize:   f.ContentLength,
			Note:       f.Quality,
		})
	}

	sort.SliceStable(options, func(i, j int) bool {
		return options[i].Filesize > options[j].Filesize
	})
	return options
}

func pickVideoFormat(formats youtube.FormatList, formatID string) *youtube.Format {
	if formatID != models.FormatBest {
		if itag, err := strconv.Atoi(formatID); err == nil {
			for i, f := range formats {
				if f.ItagNo == itag && strings.Contains(f.MimeType, "video") {
					return &formats[i]
				}
			}
		}
		// Unknown format_id falls through to the best pick.
	}

	var best *youtube.Format
	for i, f := range formats {
		if !strings.Contains(f.MimeType, "video") {
			continue
		}
		if best == nil || f.ContentLength > best.ContentLength {
			best = &formats[i]
		}
	}
	return best
}

func findBestAudioFormat(formats youtube.FormatList) *youtube.Format {
	var best *youtube.Format
	for i, f := range formats {
		if strings.Contains(f.MimeType, "audio") {
			if best == nil || (strings.Contains(f.MimeType, "mp4") && !strings.Contains(best.MimeType, "mp4")) {
				best = &formats[i]
			}
		}
	}
	return best
}

func bestThumbnail(v *youtube.Video) string {
	if len(v.Thumbnails) == 0 {
		return ""
	}
	return v.Thumbnails[len(v.Thumbnails)-1].URL
}

func resolutionLabel(f youtube.Format) string {
	if f.QualityLabel != "" {
		return f.QualityLabel
	}
	return "audio only"
}

func extFromMimeType(mimeType string) string {
	base := mimeType
	if i := strings.Index(base, ";"); i >= 0 {
		base = base[:i]
	}
	if i := strings.Index(base, "/"); i >= 0 {
		base = base[i+1:]
	}
	return strings.TrimSpace(base)
}

func sanitizeFilename(name string) string {
	safe := strings.ReplaceAll(name, " ", "_")
	return strings.Map(func(r rune) rune {
		if strings.ContainsRune(`\/:*?"<>|`, r) {
			return -1
		}
		return r
	}, safe)
}

func wrapError(err error) string {
	msg := err.Error()
	switch {
	case strings.Contains(msg, "permission denied"):
		return "Storage permission denied. Please contact system administrator."
	case strings.Contains(msg, "no space left"):
		return "Disk space exhausted. Cannot complete download."
	case strings.Contains(msg, "ffmpeg"):
		return "Media processing error (FFmpeg failed). Please try again."
	case strings.Contains(msg, "cipher") || strings.Contains(msg, "signature"):
		return "YouTube restricted access to this video (Cipher/Signature error)."
	case strings.Contains(msg, "403"):
		return "Access forbidden. YouTube might be throttling the server IP."
	case strings.Contains(msg, "can't bypass age restriction"):
		return "This video is age restricted and cannot be downloaded."
	default:
		// Genel teknik hata mesajı (Path ifşasını önler)
		return "An unexpected technical error occurred during processing."
	}
}
