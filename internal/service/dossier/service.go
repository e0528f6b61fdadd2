package dossier

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"html/template"
	"io"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"

	"cadastro-social/internal/config"
	"cadastro-social/internal/domain"
	"cadastro-social/internal/pkg/i18n"
	"cadastro-social/internal/repository"
)

// Dossier is the full view of one case: the registration, its roster,
// documents, conversation, terms agreement and ledger.
type Dossier struct {
	Registration *domain.Registration     `json:"registration"`
	Household    []domain.HouseholdMember `json:"household"`
	Documents    []domain.Document        `json:"documents"`
	Tracking     []domain.TrackingEntry   `json:"tracking"`
	Messages     []domain.Message         `json:"messages"`
	Terms        *domain.TermsAgreement   `json:"terms,omitempty"`
	GeneratedAt  time.Time                `json:"generated_at"`
	StatusLabel  string                   `json:"status_label"`
}

// Service builds case dossiers for staff: a standalone HTML summary and
// a zip archive bundling the summary with every stored attachment.
type Service interface {
	Build(ctx context.Context, actor *domain.Profile, registrationID uuid.UUID) (*Dossier, error)
	RenderHTML(dossier *Dossier) ([]byte, error)
	BuildZip(ctx context.Context, actor *domain.Profile, registrationID uuid.UUID) (string, []byte, error)
}

type service struct {
	regRepo       repository.RegistrationRepository
	householdRepo repository.HouseholdRepository
	docRepo       repository.DocumentRepository
	trackingRepo  repository.TrackingRepository
	msgRepo       repository.MessageRepository
	termsRepo     repository.TermsRepository
	profileRepo   repository.ProfileRepository
	minioClient   *minio.Client
	cfg           *config.Config
	tmpl          *template.Template
}

func NewService(
	regRepo repository.RegistrationRepository,
	householdRepo repository.HouseholdRepository,
	docRepo repository.DocumentRepository,
	trackingRepo repository.TrackingRepository,
	msgRepo repository.MessageRepository,
	termsRepo repository.TermsRepository,
	profileRepo repository.ProfileRepository,
	minioClient *minio.Client,
	cfg *config.Config,
) Service {
	return &service{
		regRepo:       regRepo,
		householdRepo: householdRepo,
		docRepo:       docRepo,
		trackingRepo:  trackingRepo,
		msgRepo:       msgRepo,
		termsRepo:     termsRepo,
		profileRepo:   profileRepo,
		minioClient:   minioClient,
		cfg:           cfg,
		tmpl:          template.Must(template.New("dossier").Parse(dossierTemplate)),
	}
}

func (s *service) Build(ctx context.Context, actor *domain.Profile, registrationID uuid.UUID) (*Dossier, error) {
	if !actor.Role.IsStaff() {
		return nil, fmt.Errorf("staff only: %w", domain.ErrForbidden)
	}

	reg, err := s.regRepo.GetByID(ctx, registrationID)
	if err != nil {
		return nil, err
	}
	if reg == nil {
		return nil, fmt.Errorf("registration %s: %w", registrationID, domain.ErrNotFound)
	}

	household, err := s.householdRepo.ListByRegistration(ctx, registrationID)
	if err != nil {
		return nil, err
	}
	docs, err := s.docRepo.ListByRegistration(ctx, registrationID)
	if err != nil {
		return nil, err
	}
	tracking, err := s.trackingRepo.ListByRegistration(ctx, registrationID, domain.TrackingAscending)
	if err != nil {
		return nil, err
	}
	messages, err := s.msgRepo.ListByRegistration(ctx, registrationID)
	if err != nil {
		return nil, err
	}
	terms, err := s.termsRepo.GetByRegistration(ctx, registrationID)
	if err != nil {
		return nil, err
	}

	s.resolveTrackingNames(ctx, tracking)
	s.resolveMessageAuthors(ctx, messages)

	return &Dossier{
		Registration: reg,
		Household:    household,
		Documents:    docs,
		Tracking:     tracking,
		Messages:     messages,
		Terms:        terms,
		GeneratedAt:  time.Now().UTC(),
		StatusLabel:  i18n.StatusLabel("pt-BR", string(reg.Status)),
	}, nil
}

func (s *service) resolveTrackingNames(ctx context.Context, entries []domain.TrackingEntry) {
	if len(entries) == 0 {
		return
	}
	seen := make(map[uuid.UUID]bool)
	ids := make([]uuid.UUID, 0, len(entries))
	for _, entry := range entries {
		if !seen[entry.UpdatedBy] {
			seen[entry.UpdatedBy] = true
			ids = append(ids, entry.UpdatedBy)
		}
	}
	profiles, err := s.profileRepo.GetByIDs(ctx, ids)
	if err != nil {
		return
	}
	names := make(map[uuid.UUID]string, len(profiles))
	for i := range profiles {
		names[profiles[i].ID] = profiles[i].DisplayName()
	}
	for i := range entries {
		if name, ok := names[entries[i].UpdatedBy]; ok {
			entries[i].UpdatedByName = name
		} else {
			entries[i].UpdatedByName = entries[i].UpdatedBy.String()
		}
	}
}

func (s *service) resolveMessageAuthors(ctx context.Context, messages []domain.Message) {
	if len(messages) == 0 {
		return
	}
	seen := make(map[uuid.UUID]bool)
	ids := make([]uuid.UUID, 0, len(messages))
	for _, msg := range messages {
		if !seen[msg.UserID] {
			seen[msg.UserID] = true
			ids = append(ids, msg.UserID)
		}
	}
	profiles, err := s.profileRepo.GetByIDs(ctx, ids)
	if err != nil {
		return
	}
	names := make(map[uuid.UUID]string, len(profiles))
	for i := range profiles {
		names[profiles[i].ID] = profiles[i].DisplayName()
	}
	for i := range messages {
		if name, ok := names[messages[i].UserID]; ok {
			messages[i].UserName = name
		} else {
			messages[i].UserName = messages[i].UserID.String()
		}
	}
}

func (s *service) RenderHTML(dossier *Dossier) ([]byte, error) {
	var buf bytes.Buffer
	if err := s.tmpl.Execute(&buf, dossier); err != nil {
		return nil, fmt.Errorf("rendering dossier: %w", err)
	}
	return buf.Bytes(), nil
}

// BuildZip returns the archive name and its bytes. The archive root is a
// folder named after the citizen holding cadastro.html and an anexos/
// directory with every blob that could be fetched; a missing blob skips
// the attachment rather than failing the whole dossier.
func (s *service) BuildZip(ctx context.Context, actor *domain.Profile, registrationID uuid.UUID) (string, []byte, error) {
	dossier, err := s.Build(ctx, actor, registrationID)
	if err != nil {
		return "", nil, err
	}

	html, err := s.RenderHTML(dossier)
	if err != nil {
		return "", nil, err
	}

	root := fmt.Sprintf("dossie_%s_%s", sanitizeName(dossier.Registration.Name), sanitizeName(dossier.Registration.CPF))

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	w, err := zw.Create(root + "/cadastro.html")
	if err != nil {
		return "", nil, err
	}
	if _, err := w.Write(html); err != nil {
		return "", nil, err
	}

	for _, doc := range dossier.Documents {
		if doc.FilePath == nil || *doc.FilePath == "" {
			continue
		}
		storagePath := normalizeStoragePath(*doc.FilePath)
		obj, err := s.minioClient.GetObject(ctx, s.cfg.MinIOBucket, storagePath, minio.GetObjectOptions{})
		if err != nil {
			continue
		}

		name := sanitizeName(doc.DocumentName)
		if ext := path.Ext(storagePath); ext != "" && !strings.HasSuffix(name, ext) {
			name += ext
		}
		entry, err := zw.Create(root + "/anexos/" + name)
		if err != nil {
			obj.Close()
			return "", nil, err
		}
		if _, err := io.Copy(entry, obj); err != nil {
			obj.Close()
			continue
		}
		obj.Close()
	}

	if err := zw.Close(); err != nil {
		return "", nil, err
	}
	return root + ".zip", buf.Bytes(), nil
}

func normalizeStoragePath(p string) string {
	p = strings.TrimLeft(strings.TrimSpace(p), "/")
	if strings.HasPrefix(strings.ToLower(p), "documents/") {
		p = p[len("documents/"):]
	}
	return p
}

func sanitizeName(name string) string {
	var b strings.Builder
	for _, r := range strings.TrimSpace(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9',
			r == '_', r == '-', r == '.':
			b.WriteRune(r)
		case r == ' ':
			b.WriteRune('_')
		}
	}
	if b.Len() == 0 {
		return "cadastro"
	}
	return b.String()
}

const dossierTemplate = `<!DOCTYPE html>
<html lang="pt-BR">
<head>
<meta charset="utf-8">
<title>Dossiê - {{.Registration.Name}}</title>
<style>
body { font-family: Arial, sans-serif; margin: 40px; color: #222; }
h1 { border-bottom: 2px solid #1a5276; padding-bottom: 8px; }
h2 { color: #1a5276; margin-top: 32px; }
table { border-collapse: collapse; width: 100%; margin-top: 8px; }
th, td { border: 1px solid #ccc; padding: 6px 10px; text-align: left; font-size: 14px; }
th { background: #eaf2f8; }
.meta { color: #666; font-size: 12px; }
</style>
</head>
<body>
<h1>Dossiê do Cadastro Social</h1>
<p class="meta">Gerado em {{.GeneratedAt.Format "02/01/2006 15:04"}} (UTC)</p>

<h2>Dados do Cidadão</h2>
<table>
<tr><th>Nome</th><td>{{.Registration.Name}}</td></tr>
<tr><th>CPF</th><td>{{.Registration.CPF}}</td></tr>
<tr><th>Status</th><td>{{.StatusLabel}}</td></tr>
{{if .Registration.Phone}}<tr><th>Telefone</th><td>{{.Registration.Phone}}</td></tr>{{end}}
{{if .Registration.Address}}<tr><th>Endereço</th><td>{{.Registration.Address}}</td></tr>{{end}}
{{if .Registration.City}}<tr><th>Cidade</th><td>{{.Registration.City}}{{if .Registration.State}} - {{.Registration.State}}{{end}}</td></tr>{{end}}
{{if .Registration.Profession}}<tr><th>Profissão</th><td>{{.Registration.Profession}}</td></tr>{{end}}
{{if .Registration.Income}}<tr><th>Renda</th><td>R$ {{.Registration.Income}}</td></tr>{{end}}
{{if .Registration.HousingSituation}}<tr><th>Situação habitacional</th><td>{{.Registration.HousingSituation}}</td></tr>{{end}}
</table>

<h2>Composição Familiar</h2>
{{if .Household}}
<table>
<tr><th>Nome</th><th>Parentesco</th><th>Idade</th><th>Renda</th></tr>
{{range .Household}}
<tr><td>{{.MemberName}}</td><td>{{.Relationship}}</td><td>{{if .Age}}{{.Age}}{{end}}</td><td>{{if .Income}}R$ {{.Income}}{{end}}</td></tr>
{{end}}
</table>
{{else}}<p>Nenhum membro cadastrado.</p>{{end}}

<h2>Documentos</h2>
{{if .Documents}}
<table>
<tr><th>Documento</th><th>Tipo</th><th>Status</th></tr>
{{range .Documents}}
<tr><td>{{.DocumentName}}</td><td>{{.DocumentType}}</td><td>{{if .Status}}{{.Status}}{{end}}</td></tr>
{{end}}
</table>
{{else}}<p>Nenhum documento enviado.</p>{{end}}

<h2>Histórico</h2>
{{if .Tracking}}
<table>
<tr><th>Data</th><th>Evento</th><th>Responsável</th><th>Observação</th></tr>
{{range .Tracking}}
<tr><td>{{.CreatedAt.Format "02/01/2006 15:04"}}</td><td>{{.Status}}</td><td>{{.UpdatedByName}}</td><td>{{if .Message}}{{.Message}}{{end}}</td></tr>
{{end}}
</table>
{{else}}<p>Sem entradas de histórico.</p>{{end}}

<h2>Mensagens</h2>
{{if .Messages}}
<table>
<tr><th>Data</th><th>Autor</th><th>Mensagem</th></tr>
{{range .Messages}}
<tr><td>{{.CreatedAt.Format "02/01/2006 15:04"}}</td><td>{{.UserName}}{{if .IsInternal}} (interno){{end}}</td><td>{{.Message}}</td></tr>
{{end}}
</table>
{{else}}<p>Nenhuma mensagem trocada.</p>{{end}}

{{if .Terms}}
<h2>Termo de Consentimento</h2>
<p>Aceito em {{.Terms.AcceptanceDate.Format "02/01/2006 15:04"}}{{if .Terms.IPAddress}} (IP {{.Terms.IPAddress}}){{end}}.</p>
{{end}}
</body>
</html>
`
