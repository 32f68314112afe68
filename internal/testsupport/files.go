package testsupport

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

// XMPPacket returns a minimal XMP packet carrying the rating in RDF
// attribute form, the shape most raster editors write.
func XMPPacket(rating int) []byte {
	return []byte(fmt.Sprintf(`<x:xmpmeta xmlns:x="adobe:ns:meta/">
 <rdf:RDF xmlns:rdf="http://www.w3.org/1999/02/22-rdf-syntax-ns#">
  <rdf:Description rdf:about="" xmlns:xmp="http://ns.adobe.com/xap/1.0/" xmp:Rating="%d"/>
 </rdf:RDF>
</x:xmpmeta>`, rating))
}

// XMPPacketElement returns a packet carrying the rating in element form.
func XMPPacketElement(rating int) []byte {
	return []byte(fmt.Sprintf(`<x:xmpmeta xmlns:x="adobe:ns:meta/">
 <rdf:RDF xmlns:rdf="http://www.w3.org/1999/02/22-rdf-syntax-ns#">
  <rdf:Description rdf:about="" xmlns:xmp="http://ns.adobe.com/xap/1.0/">
   <xmp:Rating>%d</xmp:Rating>
  </rdf:Description>
 </rdf:RDF>
</x:xmpmeta>`, rating))
}

// WriteRatedFile writes a media-shaped file whose embedded XMP packet
// carries the given rating, returning its path.
func WriteRatedFile(t testing.TB, dir, name string, value int) string {
	t.Helper()
	content := make([]byte, 0, 512)
	content = append(content, 0xFF, 0xD8, 0xFF, 0xE1)
	content = append(content, []byte("http://ns.adobe.com/xap/1.0/\x00")...)
	content = append(content, XMPPacket(value)...)
	content = append(content, 0xFF, 0xD9)
	return WriteFile(t, dir, name, content)
}

// WriteUnratedFile writes a media-shaped file with no XMP packet.
func WriteUnratedFile(t testing.TB, dir, name string) string {
	t.Helper()
	return WriteFile(t, dir, name, []byte{0xFF, 0xD8, 0xFF, 0xDB, 0x00, 0x43, 0xFF, 0xD9})
}

// WriteFile writes content under dir and returns the full path.
func WriteFile(t testing.TB, dir, name string, content []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}
